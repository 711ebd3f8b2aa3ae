// Package report computes describe-style summary statistics over the
// merged panel and renders the run artifacts: a statistics CSV and a
// Markdown report.
package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes one numeric variable. NaN observations count as
// missing and are excluded from every statistic; a variable with no
// valid observations has NaN for all of them.
type Summary struct {
	Variable string
	Count    int
	Missing  int
	Mean     float64
	Std      float64
	Min      float64
	Q25      float64
	Median   float64
	Q75      float64
	Max      float64
}

// MissingPct returns the missing share in percent of all observations.
func (s Summary) MissingPct() float64 {
	total := s.Count + s.Missing
	if total == 0 {
		return math.NaN()
	}
	return float64(s.Missing) / float64(total) * 100
}

// Describe summarizes one variable of the panel.
func Describe(variable string, values []float64) Summary {
	s := Summary{Variable: variable}

	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			s.Missing++
			continue
		}
		valid = append(valid, v)
	}
	s.Count = len(valid)
	if s.Count == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sort.Float64s(valid)
	s.Mean = stat.Mean(valid, nil)
	s.Std = stat.StdDev(valid, nil)
	s.Min = valid[0]
	s.Max = valid[len(valid)-1]
	s.Q25 = stat.Quantile(0.25, stat.LinInterp, valid, nil)
	s.Median = stat.Quantile(0.5, stat.LinInterp, valid, nil)
	s.Q75 = stat.Quantile(0.75, stat.LinInterp, valid, nil)
	return s
}

// Group is a titled set of panel variables summarized together.
type Group struct {
	Title     string
	Variables []string
}

// GroupSummary carries the computed summaries of one group.
type GroupSummary struct {
	Title     string
	Summaries []Summary
}
