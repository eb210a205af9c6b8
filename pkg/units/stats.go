package units

import "math"

// MeanStd returns the mean and population standard deviation of xs,
// std = sqrt(sum((x-mean)^2) / n). hasStd is false when xs holds fewer than
// two samples, in which case std is zero.
func MeanStd(xs []float64) (mean, std float64, hasStd bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}

	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	if len(xs) < 2 {
		return mean, 0, false
	}

	var sum float64
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return mean, math.Sqrt(sum / float64(len(xs))), true
}
