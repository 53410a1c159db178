package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/trade-machine/fixtures"
	"github.com/Dosada05/trade-machine/valuation"
)

const topProspectsPerYear = 3

// Analysis is a plain-language reading of a valued trade.
type Analysis struct {
	Summary   string   `json:"summary"`
	Prospects []string `json:"prospects"`
}

func analyzeTrade(teams []string, years []int, result valuation.Result, league *fixtures.League) Analysis {
	verdicts := make([]string, 0, len(teams))
	for _, team := range teams {
		net := result[team].Net()
		verb := "loses"
		if net > 0 {
			verb = "wins"
		}
		verdicts = append(verdicts, fmt.Sprintf("%s %s this trade with a net value of %d", team, verb, net))
	}

	yearLabels := make([]string, len(years))
	for i, y := range years {
		yearLabels[i] = strconv.Itoa(y)
	}

	summary := fmt.Sprintf("This trade involves %d teams exchanging draft picks. %s. The trade includes picks from %s.",
		len(teams), strings.Join(verdicts, ". "), strings.Join(yearLabels, ", "))

	prospects := make([]string, 0, len(years))
	if league != nil {
		for _, y := range years {
			top := league.TopProspects(y, topProspectsPerYear)
			if len(top) == 0 {
				continue
			}
			prospects = append(prospects, fmt.Sprintf("%d: %s", y, strings.Join(top, ", ")))
		}
	}

	return Analysis{Summary: summary, Prospects: prospects}
}
