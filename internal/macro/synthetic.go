package macro

import (
	"log/slog"
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic fabricates the four default series for runs without FRED
// exports on disk. The walks are seeded, so one seed and period always
// regenerate identical data. Observations are stamped on the first of
// each month the way FRED stamps monthly series; alignment moves them to
// month-end.
func Synthetic(seed uint64, start, end time.Time) []Series {
	n := monthsBetween(start, end)
	if n <= 0 {
		return nil
	}

	src := rand.NewSource(seed)
	rateStep := distuv.Normal{Mu: 0, Sigma: 0.2, Src: src}
	spread := distuv.Normal{Mu: 2.5, Sigma: 0.5, Src: src}
	cpiDrift := distuv.Normal{Mu: 0.003, Sigma: 0.02, Src: src}
	jobSwing := distuv.Normal{Mu: 0, Sigma: 0.15, Src: src}

	fedFunds := Series{ID: SeriesFedFunds}
	mortgage := Series{ID: SeriesMortgage30US}
	cpi := Series{ID: SeriesCPI}
	unemployment := Series{ID: SeriesUnemployment}

	var rateWalk, logCPIWalk, jobWalk float64
	for i := 0; i < n; i++ {
		date := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)

		rateWalk += rateStep.Rand()
		rate := math.Max(0.1, 2.0+rateWalk)
		fedFunds.Observations = append(fedFunds.Observations, Observation{Date: date, Value: rate})

		mortgage.Observations = append(mortgage.Observations, Observation{
			Date: date, Value: rate + spread.Rand()})

		logCPIWalk += cpiDrift.Rand()
		cpi.Observations = append(cpi.Observations, Observation{
			Date: date, Value: 220 * math.Exp(logCPIWalk)})

		jobWalk += jobSwing.Rand()
		unemployment.Observations = append(unemployment.Observations, Observation{
			Date: date, Value: math.Max(3.0, 4.5+jobWalk)})
	}

	slog.Warn("generated synthetic macro data, no series files were found",
		slog.Uint64("seed", seed),
		slog.Int("months", n))

	return []Series{fedFunds, mortgage, cpi, unemployment}
}

// monthsBetween counts calendar months from start to end inclusive.
func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}
