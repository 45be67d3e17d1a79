package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveScores(t *testing.T) {
	tests := []struct {
		name       string
		sourceProb int
		targetProb int
		wantOneWay int
		wantTwoWay int
	}{
		{"typical pair", 80, 50, 80, 40},
		{"odd product rounds down", 33, 34, 33, 11},
		{"midpoint has no ambiguity", 50, 50, 50, 25},
		{"zero source kills joint score", 0, 90, 0, 0},
		{"zero target kills joint score", 90, 0, 90, 0},
		{"perfect pair", 100, 100, 100, 100},
		{"rounds half away from zero", 55, 99, 55, 54}, // 54.45 -> 54
		{"rounds up past half", 85, 30, 85, 26},        // 25.5 -> 26
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oneWay, twoWay := DeriveScores(tt.sourceProb, tt.targetProb)
			assert.Equal(t, tt.wantOneWay, oneWay)
			assert.Equal(t, tt.wantTwoWay, twoWay)
		})
	}
}

func TestDeriveScoresStaysInRange(t *testing.T) {
	for s := 0; s <= 100; s += 5 {
		for tp := 0; tp <= 100; tp += 5 {
			oneWay, twoWay := DeriveScores(s, tp)
			assert.Equal(t, s, oneWay)
			assert.GreaterOrEqual(t, twoWay, 0)
			assert.LessOrEqual(t, twoWay, 100)
		}
	}
}
