package similarity

import "math"

// Gaussian returns the unnormalized bell curve value at x for a curve centered
// on mean. The peak value is always 1.0 regardless of the standard deviation.
func Gaussian(x, mean, stdDev float64) float64 {
	d := x - mean
	return math.Exp(-(d * d) / (2 * stdDev * stdDev))
}

// YearWindow returns the search interval [start, stop) for two birth years.
func YearWindow(a, b int) (start, stop int) {
	return min(a, b) - Window, max(a, b) + Window
}

// Overlap compares the apprentice and master birth-year curves on a grid of
// hundredths of a year across YearWindow. Among grid points where the two curves
// differ by less than DeltaThreshold, it keeps the point with the highest mean
// curve value. found is false when the curves never come that close.
func Overlap(apprenticeBirth, masterBirth int) (score, bestYear float64, found bool) {
	start, stop := YearWindow(apprenticeBirth, masterBirth)
	a := float64(apprenticeBirth)
	m := float64(masterBirth)

	for x := start * gridScale; x < stop*gridScale; x++ {
		year := float64(x) / gridScale
		y1 := Gaussian(year, a, ApprenticeStdDev)
		y2 := Gaussian(year, m, MasterStdDev)
		if math.Abs(y1-y2) >= DeltaThreshold {
			continue
		}
		avg := (y1 + y2) / 2
		if !found || avg > score {
			score = avg
			bestYear = year
			found = true
		}
	}
	return score, bestYear, found
}
