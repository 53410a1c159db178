package valuation

import (
	"encoding/json"
	"fmt"
)

// Transfer is a single draft pick moving from one team to another.
type Transfer struct {
	Year          int    `json:"year" yaml:"year"`
	Round         int    `json:"round" yaml:"round"`
	PickNumber    int    `json:"pick_number" yaml:"pick_number"`
	GivingTeam    string `json:"giving_team" yaml:"giving_team"`
	ReceivingTeam string `json:"receiving_team" yaml:"receiving_team"`
}

// Label renders the pick the way it is shown to users, e.g. "2025 Round 1 Pick 1".
func (t Transfer) Label() string {
	return fmt.Sprintf("%d Round %d Pick %d", t.Year, t.Round, t.PickNumber)
}

// Value is the chart value of the transferred pick.
func (t Transfer) Value() int {
	return PickValue(t.Round, t.PickNumber)
}

// TeamValueSummary is what one team gave and received in a trade.
type TeamValueSummary struct {
	Given         int      `json:"given"`
	Received      int      `json:"received"`
	GivenPicks    []string `json:"given_picks"`
	ReceivedPicks []string `json:"received_picks"`
}

// Net is received minus given.
func (s TeamValueSummary) Net() int {
	return s.Received - s.Given
}

// Favorable reports whether the team did not lose value. This is an
// illustration of the chart, not a judgement on the real-world trade.
func (s TeamValueSummary) Favorable() bool {
	return s.Net() >= 0
}

// MarshalJSON adds the derived net and favorable fields.
func (s TeamValueSummary) MarshalJSON() ([]byte, error) {
	type summary TeamValueSummary
	return json.Marshal(struct {
		summary
		Net       int  `json:"net"`
		Favorable bool `json:"favorable"`
	}{summary(s), s.Net(), s.Favorable()})
}

// Result maps every team appearing in a trade to its summary.
type Result map[string]TeamValueSummary

// Evaluate values a trade. Every team named as a participant or as a
// giving/receiving party on any transfer gets an entry, even when it has
// nothing to show for it. Evaluate does not modify its arguments.
func Evaluate(teams []string, picks []Transfer) Result {
	result := make(Result, len(teams))

	ensure := func(name string) {
		if _, ok := result[name]; !ok {
			result[name] = TeamValueSummary{
				GivenPicks:    []string{},
				ReceivedPicks: []string{},
			}
		}
	}

	for _, name := range teams {
		ensure(name)
	}
	for _, p := range picks {
		ensure(p.GivingTeam)
		ensure(p.ReceivingTeam)
	}

	for _, p := range picks {
		value := p.Value()
		label := p.Label()

		giver := result[p.GivingTeam]
		giver.Given += value
		giver.GivenPicks = append(giver.GivenPicks, label)
		result[p.GivingTeam] = giver

		receiver := result[p.ReceivingTeam]
		receiver.Received += value
		receiver.ReceivedPicks = append(receiver.ReceivedPicks, label)
		result[p.ReceivingTeam] = receiver
	}

	return result
}
