// Package fixtures holds the reference league data baked into the binary:
// NBA teams with last season's win percentage, draft prospects by year and
// the sample account used for local development.
package fixtures

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Dosada05/trade-machine/valuation"
)

//go:embed data/league.yaml
var leagueYAML []byte

type Team struct {
	Name          string  `yaml:"name"`
	WinPercentage float64 `yaml:"win_percentage"`
}

type SampleUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SampleTrade struct {
	Description string               `yaml:"description"`
	Teams       []string             `yaml:"teams"`
	DraftPicks  []valuation.Transfer `yaml:"draft_picks"`
}

type League struct {
	Teams        []Team           `yaml:"teams"`
	DraftYears   []int            `yaml:"draft_years"`
	Prospects    map[int][]string `yaml:"prospects"`
	SampleUser   SampleUser       `yaml:"sample_user"`
	SampleTrades []SampleTrade    `yaml:"sample_trades"`
}

var (
	loadOnce sync.Once
	league   *League
	loadErr  error
)

// Load parses the embedded league data. The result is shared and must not
// be modified.
func Load() (*League, error) {
	loadOnce.Do(func() {
		league, loadErr = parse(leagueYAML)
	})
	return league, loadErr
}

func parse(data []byte) (*League, error) {
	var l League
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse league fixtures: %w", err)
	}
	if len(l.Teams) == 0 {
		return nil, fmt.Errorf("league fixtures contain no teams")
	}
	return &l, nil
}

// ProspectsFor returns the prospects of the given years that the fixtures
// know about. Years without data are omitted.
func (l *League) ProspectsFor(years []int) map[int][]string {
	out := make(map[int][]string, len(years))
	for _, y := range years {
		if p, ok := l.Prospects[y]; ok {
			out[y] = p
		}
	}
	return out
}

// TopProspects returns at most n prospects for year, best first.
func (l *League) TopProspects(year, n int) []string {
	p := l.Prospects[year]
	if len(p) > n {
		p = p[:n]
	}
	return p
}
