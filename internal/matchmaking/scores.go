package matchmaking

import "math"

// DeriveScores converts the oracle's swipe probabilities into the two
// persisted scores. The one-way score is the source's probability alone;
// the two-way score is the joint probability normalized back onto the 0-100
// scale, rounded half away from zero.
func DeriveScores(sourceProb, targetProb int) (oneWay, twoWay int) {
	oneWay = sourceProb
	twoWay = int(math.Round(float64(sourceProb) * float64(targetProb) / 100))
	return oneWay, twoWay
}
