// Package aggregate derives display-ready statistics from the joined roster.
// Nothing in this package mutates the joined entities.
package aggregate

import (
	"github.com/montanaflynn/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Percent returns part/whole as a percentage rounded to one decimal.
// It is 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	rounded, err := stats.Round(float64(part)/float64(whole)*100, 1)
	if err != nil {
		return 0
	}
	return rounded
}

// compareNames orders display names the way a reader expects, ignoring case
// and accents first. A collator is not safe for concurrent use, so each sort
// builds its own.
func compareNames() func(a, b string) int {
	c := collate.New(language.Und, collate.IgnoreCase)
	return func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
}
