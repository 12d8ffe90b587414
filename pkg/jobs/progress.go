package jobs

import (
	"fmt"
	"math"
	"time"
)

const (
	syntheticStep = 2
	syntheticCap  = 95
	batchCap      = 99
)

// nextSyntheticPercent advances the cosmetic poll progress toward a cap below 100
func nextSyntheticPercent(current int) int {
	if current+syntheticStep >= syntheticCap {
		return syntheticCap
	}
	return current + syntheticStep
}

// batchPercent is the processed share of total, capped until the job completes
func batchPercent(total, remaining int) int {
	if total <= 0 {
		return 0
	}
	processed := total - remaining
	if processed < 0 {
		processed = 0
	}
	p := processed * 100 / total
	if p > batchCap {
		return batchCap
	}
	return p
}

// batchesLeft is ceil(remaining / batchSize)
func batchesLeft(remaining, batchSize int) int {
	if remaining <= 0 {
		return 0
	}
	if batchSize <= 0 {
		return 1
	}
	return int(math.Ceil(float64(remaining) / float64(batchSize)))
}

// EstimateETA extrapolates the last batch duration over the batches left.
// It returns false when there is no sample yet.
func EstimateETA(remaining, batchSize int, lastBatch time.Duration) (time.Duration, bool) {
	if lastBatch <= 0 {
		return 0, false
	}
	return time.Duration(batchesLeft(remaining, batchSize)) * lastBatch, true
}

// FormatETA renders an ETA the way the progress panel shows it
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "less than a second"
	}
	secs := int(math.Ceil(d.Seconds()))
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %02ds", secs/60, secs%60)
}
