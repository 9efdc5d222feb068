package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// relErr absorbs floating error when comparing hypergeometric point
// probabilities against the observed table's probability; sumTol does the
// same for the accumulated tail sum.
const (
	relErr = 1e-7
	sumTol = 1e-9
)

// FisherExact2x2 returns the two-sided Fisher exact test p-value for the
// contingency table [[a, b], [c, d]]. The p-value is the hypergeometric
// probability mass of all tables with the observed margins that are at most
// as likely as the observed one. Degenerate tables (an empty margin) have a
// single admissible configuration and return 1.
func FisherExact2x2(a, b, c, d int) float64 {
	n := a + b + c + d
	if n == 0 {
		return 1
	}

	// Margins: successes = first column (a+c), draws = first row (a+b).
	successes := a + c
	draws := a + b

	lo := draws - (n - successes)
	if lo < 0 {
		lo = 0
	}
	hi := draws
	if successes < hi {
		hi = successes
	}
	if lo >= hi {
		return 1
	}

	logObserved := logHypergeometricProb(a, successes, draws, n)
	cutoff := logObserved + relErr

	var p float64
	for k := lo; k <= hi; k++ {
		if logp := logHypergeometricProb(k, successes, draws, n); logp <= cutoff {
			p += math.Exp(logp)
		}
	}
	// Summing the whole support accumulates float error on both sides of 1.
	if p > 1-sumTol {
		return 1
	}
	return p
}

// logHypergeometricProb returns the log probability of drawing k successes
// in draws draws without replacement from a population of size n containing
// successes successes.
func logHypergeometricProb(k, successes, draws, n int) float64 {
	return combin.LogGeneralizedBinomial(float64(successes), float64(k)) +
		combin.LogGeneralizedBinomial(float64(n-successes), float64(draws-k)) -
		combin.LogGeneralizedBinomial(float64(n), float64(draws))
}
