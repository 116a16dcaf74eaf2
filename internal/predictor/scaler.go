package predictor

import "math"

const machineEpsilon = 2.220446049250313e-16

// Scaler standardizes features with a per-feature mean and scale learned at
// training time. The same pair must be applied at inference.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes the mean and population standard deviation of every
// column. Constant columns get a scale of 1 so they transform to 0.
func FitScaler(rows [][]float64) Scaler {
	if len(rows) == 0 {
		return Scaler{}
	}
	width := len(rows[0])
	mean := make([]float64, width)
	scale := make([]float64, width)

	for _, r := range rows {
		for j, v := range r {
			mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}

	for _, r := range rows {
		for j, v := range r {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] < 10*machineEpsilon {
			scale[j] = 1
		}
	}

	return Scaler{Mean: mean, Scale: scale}
}

// Transform returns a standardized copy of x
func (s Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

func (s Scaler) Width() int {
	return len(s.Mean)
}
