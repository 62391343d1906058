package statistics

import (
	"fmt"
	"math"
)

// Summary tracks running moments of a stream of per-trial outcomes without
// storing the values themselves.
type Summary struct {
	N     int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
	Min   float64
	Max   float64
}

// Add incorporates one observation
func (s *Summary) Add(v float64) {
	if s.N == 0 || v < s.Min {
		s.Min = v
	}
	if s.N == 0 || v > s.Max {
		s.Max = v
	}
	s.N++
	s.Sum += v
	s.SumSq += v * v
}

// Merge folds another summary into s, as if its observations had been added to s.
func (s *Summary) Merge(other Summary) {
	if other.N == 0 {
		return
	}
	if s.N == 0 {
		*s = other
		return
	}
	s.N += other.N
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Min = min(s.Min, other.Min)
	s.Max = max(s.Max, other.Max)
}

// Mean returns the arithmetic mean of all observations
func (s *Summary) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance of all observations
func (s *Summary) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
	if v < 0 { // rounding on near-constant streams
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Validate checks the summary is internally consistent.
func (s *Summary) Validate() error {
	if s.N < 0 {
		return fmt.Errorf("invalid observation count: %d", s.N)
	}
	if s.N == 0 {
		return nil
	}
	if s.Min > s.Max {
		return fmt.Errorf("min %.6f exceeds max %.6f", s.Min, s.Max)
	}
	if mean := s.Mean(); mean < s.Min-1e-9 || mean > s.Max+1e-9 {
		return fmt.Errorf("mean %.6f outside observed range [%.6f, %.6f]", mean, s.Min, s.Max)
	}
	if math.IsNaN(s.Sum) || math.IsInf(s.Sum, 0) {
		return fmt.Errorf("sum is not finite: %v", s.Sum)
	}
	return nil
}
