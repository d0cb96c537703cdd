package domain

import (
	"strconv"
	"strings"
)

var bengaliDigits = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
)

// AssessmentYearKey returns the numeric sort key of a fiscal-year label.
// "2019-20" and "২০১৯-২০" both yield 2019. Labels without digits yield 0.
func AssessmentYearKey(label string) int {
	first, _, _ := strings.Cut(label, "-")
	first = bengaliDigits.Replace(strings.TrimSpace(first))

	var b strings.Builder
	for _, r := range first {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
