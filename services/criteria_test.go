package services

import (
	"testing"

	"edu-gamification-service/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCriteria(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		cmp       models.Comparator
		threshold string
		expected  bool
	}{
		{name: "equals match", value: 1, cmp: models.ComparatorEquals, threshold: "1", expected: true},
		{name: "equals mismatch", value: 2, cmp: models.ComparatorEquals, threshold: "1", expected: false},
		{name: "greater_than strict", value: 25, cmp: models.ComparatorGreaterThan, threshold: "24", expected: true},
		{name: "greater_than equal is false", value: 24, cmp: models.ComparatorGreaterThan, threshold: "24", expected: false},
		{name: "less_than", value: 3, cmp: models.ComparatorLessThan, threshold: "5", expected: true},
		{name: "less_than equal is false", value: 5, cmp: models.ComparatorLessThan, threshold: "5", expected: false},
		{name: "contains digit", value: 125, cmp: models.ComparatorContains, threshold: "2", expected: true},
		{name: "contains missing digit", value: 13, cmp: models.ComparatorContains, threshold: "2", expected: false},
		{name: "starts_with", value: 42, cmp: models.ComparatorStartsWith, threshold: "4", expected: true},
		{name: "starts_with mismatch", value: 24, cmp: models.ComparatorStartsWith, threshold: "4", expected: false},
		{name: "unparseable numeric threshold is false", value: 1, cmp: models.ComparatorEquals, threshold: "x", expected: false},
		{name: "unknown comparator is false", value: 1, cmp: models.Comparator("between"), threshold: "1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EvaluateCriteria(tt.value, tt.cmp, tt.threshold))
		})
	}
}
