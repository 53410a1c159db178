package valuation

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamNames(r Result) []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func twoTeamTrade() ([]string, []Transfer) {
	teams := []string{"A", "B"}
	picks := []Transfer{
		{Year: 2025, Round: 1, PickNumber: 1, GivingTeam: "A", ReceivingTeam: "B"},
		{Year: 2025, Round: 2, PickNumber: 15, GivingTeam: "B", ReceivingTeam: "A"},
	}
	return teams, picks
}

func TestEvaluateTwoTeamScenario(t *testing.T) {
	teams, picks := twoTeamTrade()

	got := Evaluate(teams, picks)

	want := Result{
		"A": {
			Given:         4000,
			Received:      370,
			GivenPicks:    []string{"2025 Round 1 Pick 1"},
			ReceivedPicks: []string{"2025 Round 2 Pick 15"},
		},
		"B": {
			Given:         370,
			Received:      4000,
			GivenPicks:    []string{"2025 Round 2 Pick 15"},
			ReceivedPicks: []string{"2025 Round 1 Pick 1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, -3630, got["A"].Net())
	assert.False(t, got["A"].Favorable())
	assert.Equal(t, 3630, got["B"].Net())
	assert.True(t, got["B"].Favorable())
}

func TestEvaluateIncludesEveryNamedTeam(t *testing.T) {
	picks := []Transfer{
		{Year: 2026, Round: 1, PickNumber: 12, GivingTeam: "Milwaukee Bucks", ReceivingTeam: "Phoenix Suns"},
	}

	got := Evaluate([]string{"Miami Heat"}, picks)

	assert.Equal(t, []string{"Miami Heat", "Milwaukee Bucks", "Phoenix Suns"}, teamNames(got))
	assert.Equal(t, TeamValueSummary{GivenPicks: []string{}, ReceivedPicks: []string{}}, got["Miami Heat"])
	assert.True(t, got["Miami Heat"].Favorable(), "zero net counts as favorable")
}

func TestEvaluateCollapsesDuplicateTeamNames(t *testing.T) {
	teams, picks := twoTeamTrade()
	teams = append(teams, "A", "B")

	got := Evaluate(teams, picks)

	assert.Len(t, got, 2)
}

func TestEvaluateConservesValue(t *testing.T) {
	cases := map[string][]Transfer{
		"empty": nil,
		"three team": {
			{Year: 2024, Round: 1, PickNumber: 3, GivingTeam: "Miami Heat", ReceivingTeam: "Milwaukee Bucks"},
			{Year: 2025, Round: 1, PickNumber: 12, GivingTeam: "Milwaukee Bucks", ReceivingTeam: "Phoenix Suns"},
			{Year: 2026, Round: 2, PickNumber: 25, GivingTeam: "Phoenix Suns", ReceivingTeam: "Miami Heat"},
		},
		"out of range pick": {
			{Year: 2027, Round: 2, PickNumber: 40, GivingTeam: "A", ReceivingTeam: "B"},
			{Year: 2027, Round: 1, PickNumber: 30, GivingTeam: "B", ReceivingTeam: "C"},
		},
	}
	for name, picks := range cases {
		t.Run(name, func(t *testing.T) {
			got := Evaluate(nil, picks)
			given, received, net := 0, 0, 0
			for _, s := range got {
				given += s.Given
				received += s.Received
				net += s.Net()
			}
			assert.Equal(t, given, received)
			assert.Zero(t, net)
		})
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	teams, picks := twoTeamTrade()
	teamsBefore := append([]string(nil), teams...)
	picksBefore := append([]Transfer(nil), picks...)

	first := Evaluate(teams, picks)
	second := Evaluate(teams, picks)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second evaluation differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, teamsBefore, teams)
	assert.Equal(t, picksBefore, picks)
}

func TestTeamValueSummaryJSON(t *testing.T) {
	s := TeamValueSummary{Given: 370, Received: 4000, GivenPicks: []string{"x"}, ReceivedPicks: []string{"y"}}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 3630, decoded["net"])
	assert.Equal(t, true, decoded["favorable"])
	assert.EqualValues(t, 370, decoded["given"])
	assert.Equal(t, []any{"x"}, decoded["given_picks"])
}
