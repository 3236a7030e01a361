package services

import (
	"strconv"
	"strings"

	"edu-gamification-service/models"
)

// EvaluateCriteria applies a single criteria comparison: statValue <op> threshold.
// Numeric comparators parse the threshold as a number; the string comparators
// work on the decimal rendering of the stat, matching how the criteria were
// authored (thresholds like "2" against a stat printed as "25").
func EvaluateCriteria(statValue float64, cmp models.Comparator, threshold string) bool {
	switch cmp {
	case models.ComparatorEquals:
		t, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return false
		}
		return statValue == t
	case models.ComparatorGreaterThan:
		t, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return false
		}
		return statValue > t
	case models.ComparatorLessThan:
		t, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return false
		}
		return statValue < t
	case models.ComparatorContains:
		return strings.Contains(formatStat(statValue), threshold)
	case models.ComparatorStartsWith:
		return strings.HasPrefix(formatStat(statValue), threshold)
	default:
		return false
	}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
