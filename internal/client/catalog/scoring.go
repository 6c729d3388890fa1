package catalog

import (
	"strings"

	"github.com/dmitrijs2005/gameguesser/internal/client/models"
	"golang.org/x/text/cases"
)

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ScoreGuess checks a keyword-game guess against g on the device. A wrong
// guess gets a hint chosen by pick from g's keywords.
func ScoreGuess(g models.Game, guess string, pick func(n int) int) models.GuessResult {
	q := fold(guess)
	if q != "" {
		if q == fold(g.Name) {
			return models.GuessResult{Correct: true}
		}
		for _, k := range g.Keywords {
			if q == fold(k) {
				return models.GuessResult{Correct: true}
			}
		}
	}

	res := models.GuessResult{}
	if len(g.Keywords) > 0 {
		res.Hint = g.Keywords[pick(len(g.Keywords))]
	}
	return res
}

// CompareOffline approximates the server comparator. A keyword is exact when
// it equals the guess and partial when either contains the other; unrelated
// keywords are left out of Matches.
func CompareOffline(g models.Game, guessName string) models.Comparison {
	q := fold(guessName)
	res := models.Comparison{Matches: map[string]models.MatchKind{}}
	if q == "" {
		return res
	}

	res.Correct = q == fold(g.Name)
	for _, k := range g.Keywords {
		fk := fold(k)
		switch {
		case fk == "":
		case fk == q:
			res.Matches[k] = models.MatchExact
			res.Correct = true
		case strings.Contains(fk, q) || strings.Contains(q, fk):
			res.Matches[k] = models.MatchPartial
		}
	}
	return res
}

func matchesQuery(g models.Game, q string) bool {
	if strings.Contains(fold(g.Name), q) {
		return true
	}
	for _, k := range g.Keywords {
		if strings.Contains(fold(k), q) {
			return true
		}
	}
	return false
}
