// internal/forecast/model.go
package forecast

import (
	"math"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/domain"
)

// additiveModel is a daily demand model of the form
//
//	yhat(t) = intercept + slope*t + seasonal[weekday(t)]
//
// with t measured in days since the first observation. Seasonality is a
// weekly profile; for retail order data that is where almost all of the
// short-horizon structure lives.
type additiveModel struct {
	origin    time.Time
	intercept float64
	slope     float64
	seasonal  [7]float64
}

// huberDelta scales the reweighting of large residuals between refinement
// passes. Residuals beyond delta get down-weighted proportionally.
const huberDelta = 1.345

// fitAdditive fits the model with weighted least squares, refined by a
// bounded number of Huber-style reweighting passes so a handful of outlier
// days cannot drag the trend. Each pass checks the deadline; exceeding it
// aborts the fit rather than looping on pathological input.
func fitAdditive(points []domain.DemandPoint, maxIter int, deadline time.Time) (*additiveModel, error) {
	n := len(points)
	if n < 2 {
		return nil, ErrUnavailable
	}

	origin := points[0].Date
	ts := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		ts[i] = p.Date.Sub(origin).Hours() / 24
		ys[i] = p.Quantity
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return nil, ErrUnavailable
		}
	}

	m := &additiveModel{origin: origin}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}

	if maxIter < 1 {
		maxIter = 1
	}

	residuals := make([]float64, n)
	prevSlope, prevIntercept := math.Inf(1), math.Inf(1)

	for iter := 0; iter < maxIter; iter++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, ErrUnavailable
		}

		// Trend on deseasonalized observations.
		intercept, slope, ok := weightedLine(ts, ys, weights, m.seasonal, points)
		if !ok {
			return nil, ErrUnavailable
		}
		m.intercept, m.slope = intercept, slope

		// Weekly profile from the detrended residuals, centered so the
		// profile shifts demand across weekdays without inflating the level.
		var sums, counts [7]float64
		for i, p := range points {
			r := ys[i] - (m.intercept + m.slope*ts[i])
			wd := int(p.Date.Weekday())
			sums[wd] += r * weights[i]
			counts[wd] += weights[i]
		}
		var mean float64
		var filled int
		for wd := 0; wd < 7; wd++ {
			if counts[wd] > 0 {
				m.seasonal[wd] = sums[wd] / counts[wd]
				mean += m.seasonal[wd]
				filled++
			} else {
				m.seasonal[wd] = 0
			}
		}
		if filled > 0 {
			mean /= float64(filled)
			for wd := 0; wd < 7; wd++ {
				if counts[wd] > 0 {
					m.seasonal[wd] -= mean
				}
			}
		}

		// Converged when the trend stops moving.
		if math.Abs(m.slope-prevSlope) < 1e-9 && math.Abs(m.intercept-prevIntercept) < 1e-9 {
			break
		}
		prevSlope, prevIntercept = m.slope, m.intercept

		// Reweight by residual magnitude for the next pass.
		for i := range points {
			residuals[i] = ys[i] - m.predict(points[i].Date)
		}
		scale := medianAbs(residuals)
		if scale < 1e-9 {
			break
		}
		for i, r := range residuals {
			if a := math.Abs(r) / scale; a > huberDelta {
				weights[i] = huberDelta / a
			} else {
				weights[i] = 1
			}
		}
	}

	if math.IsNaN(m.slope) || math.IsInf(m.slope, 0) ||
		math.IsNaN(m.intercept) || math.IsInf(m.intercept, 0) {
		return nil, ErrUnavailable
	}

	return m, nil
}

func (m *additiveModel) predict(date time.Time) float64 {
	t := date.Sub(m.origin).Hours() / 24
	return m.intercept + m.slope*t + m.seasonal[int(date.Weekday())]
}

// weightedLine solves the weighted least-squares line over (t, y - seasonal).
// Returns ok=false when the time axis carries no variance, which would make
// the slope undefined.
func weightedLine(ts, ys, weights []float64, seasonal [7]float64, points []domain.DemandPoint) (intercept, slope float64, ok bool) {
	var sw, st, sy, stt, sty float64
	for i := range ts {
		w := weights[i]
		y := ys[i] - seasonal[int(points[i].Date.Weekday())]
		sw += w
		st += w * ts[i]
		sy += w * y
		stt += w * ts[i] * ts[i]
		sty += w * ts[i] * y
	}
	denom := sw*stt - st*st
	if sw == 0 || math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	slope = (sw*sty - st*sy) / denom
	intercept = (sy - slope*st) / sw
	return intercept, slope, true
}

func medianAbs(values []float64) float64 {
	abs := make([]float64, len(values))
	for i, v := range values {
		abs[i] = math.Abs(v)
	}
	// insertion sort; residual slices are small
	for i := 1; i < len(abs); i++ {
		for j := i; j > 0 && abs[j] < abs[j-1]; j-- {
			abs[j], abs[j-1] = abs[j-1], abs[j]
		}
	}
	n := len(abs)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return abs[n/2]
	}
	return (abs[n/2-1] + abs[n/2]) / 2
}
