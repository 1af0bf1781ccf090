// Package analysis computes technical indicators and scores tickers for the
// conservative and moonshot strategies.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

// minBars is the shortest history the indicator suite accepts. Below it the
// longer windows (SMA50, MACD signal warm-up) are meaningless.
const minBars = 50

// Indicator windows, matching the common defaults the scoring rules assume.
const (
	smaShort  = 20
	smaMid    = 50
	smaLong   = 200
	rsiPeriod = 14
	atrPeriod = 14
	adxPeriod = 14
	macdFast  = 12
	macdSlow  = 26
	macdSig   = 9
	bollWidth = 2.0
)

// Compute derives the latest-bar indicator snapshot from a candle series in
// ascending timestamp order.
//
// Series shorter than minBars return a zeroed snapshot with Insufficient set,
// so callers can surface "insufficient data" instead of nonsense numbers.
// Windows longer than the series (e.g. SMA200 on 120 bars) stay zero, which
// deliberately disables the below-SMA200 penalty for young histories.
func Compute(candles []models.Candle) models.Metrics {
	if len(candles) == 0 {
		return models.Metrics{Insufficient: true}
	}

	last := candles[len(candles)-1]
	m := models.Metrics{
		Ticker: last.Ticker,
		AsOf:   last.Timestamp,
		Close:  last.Close,
		Volume: last.Volume,
	}
	if len(candles) < minBars {
		m.Insufficient = true
		return m
	}

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	volumes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
		volumes[i] = float64(c.Volume)
	}

	m.SMA20 = sma(closes, smaShort)
	m.SMA50 = sma(closes, smaMid)
	m.SMA200 = sma(closes, smaLong)
	m.RSI = rsi(closes, rsiPeriod)
	m.MACD, m.MACDSignal = macd(closes)
	m.ATR = atr(highs, lows, closes, atrPeriod)
	m.ADX = adx(highs, lows, closes, adxPeriod)

	// Bollinger bands: SMA20 +/- 2 sigma; bandwidth over close is the
	// volatility measure the conservative strategy filters on.
	mid, sigma := bollinger(closes, smaShort)
	m.BollLower = mid - bollWidth*sigma
	m.BollUpper = mid + bollWidth*sigma
	if m.Close > 0 {
		m.Volatility = (m.BollUpper - m.BollLower) / m.Close
	}

	m.VolSMA20 = sma(volumes, smaShort)
	if m.VolSMA20 > 0 {
		m.RVOL = float64(last.Volume) / m.VolSMA20
	} else {
		m.RVOL = 1
	}

	return m
}

// sma is the simple average of the trailing n values, zero when the series
// is shorter than n.
func sma(values []float64, n int) float64 {
	if len(values) < n || n <= 0 {
		return 0
	}
	return stat.Mean(values[len(values)-n:], nil)
}

// bollinger returns the 20-bar mid line and standard deviation.
func bollinger(closes []float64, n int) (mid, sigma float64) {
	if len(closes) < n {
		return 0, 0
	}
	window := closes[len(closes)-n:]
	return stat.Mean(window, nil), stat.StdDev(window, nil)
}

// rsi is Wilder's relative strength index: the first average is a plain mean
// over the seed window, every later one is smoothed as (prev*(n-1)+cur)/n.
func rsi(closes []float64, n int) float64 {
	if len(closes) <= n {
		return 0
	}

	var avgGain, avgLoss float64
	for i := 1; i <= n; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(n)
	avgLoss /= float64(n)

	for i := n + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(n-1) + gain) / float64(n)
		avgLoss = (avgLoss*float64(n-1) + loss) / float64(n)
	}

	if avgLoss == 0 {
		if avgGain == 0 {
			// flat series carries no momentum signal
			return 0
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ema computes the full exponential moving average series, seeded with the
// simple mean of the first n values. Returns nil when the input is too short.
func ema(values []float64, n int) []float64 {
	if len(values) < n || n <= 0 {
		return nil
	}
	out := make([]float64, len(values)-n+1)
	out[0] = stat.Mean(values[:n], nil)
	alpha := 2.0 / float64(n+1)
	for i := n; i < len(values); i++ {
		out[i-n+1] = alpha*values[i] + (1-alpha)*out[i-n]
	}
	return out
}

// macd returns the latest MACD line (EMA12-EMA26) and its 9-bar signal line.
func macd(closes []float64) (line, signal float64) {
	fast := ema(closes, macdFast)
	slow := ema(closes, macdSlow)
	if fast == nil || slow == nil {
		return 0, 0
	}

	// Align the two EMA series on their tails and build the MACD series.
	n := len(slow)
	if len(fast) < n {
		n = len(fast)
	}
	series := make([]float64, n)
	for i := 0; i < n; i++ {
		series[i] = fast[len(fast)-n+i] - slow[len(slow)-n+i]
	}

	sig := ema(series, macdSig)
	if sig == nil {
		return series[len(series)-1], 0
	}
	return series[len(series)-1], sig[len(sig)-1]
}

// atr is Wilder's average true range over n bars.
func atr(highs, lows, closes []float64, n int) float64 {
	trs := trueRanges(highs, lows, closes)
	return wilderSmooth(trs, n)
}

func trueRanges(highs, lows, closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		out[i-1] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// wilderSmooth runs Wilder's recursive smoothing over a series and returns
// the final value, zero when the series is shorter than n.
func wilderSmooth(values []float64, n int) float64 {
	if len(values) < n || n <= 0 {
		return 0
	}
	s := stat.Mean(values[:n], nil)
	for i := n; i < len(values); i++ {
		s = (s*float64(n-1) + values[i]) / float64(n)
	}
	return s
}

// adx is Wilder's average directional index: directional movement smoothed
// into +DI/-DI, their spread into DX, and DX smoothed again into ADX.
func adx(highs, lows, closes []float64, n int) float64 {
	if len(closes) < 2*n+1 {
		return 0
	}

	trs := trueRanges(highs, lows, closes)
	plusDM := make([]float64, len(trs))
	minusDM := make([]float64, len(trs))
	for i := 1; i < len(closes); i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	// Running Wilder sums, emitting a DX value per bar once warmed up.
	smTR := stat.Mean(trs[:n], nil)
	smPlus := stat.Mean(plusDM[:n], nil)
	smMinus := stat.Mean(minusDM[:n], nil)

	dxs := make([]float64, 0, len(trs)-n+1)
	appendDX := func() {
		if smTR == 0 {
			dxs = append(dxs, 0)
			return
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		if sum := plusDI + minusDI; sum > 0 {
			dxs = append(dxs, 100*math.Abs(plusDI-minusDI)/sum)
		} else {
			dxs = append(dxs, 0)
		}
	}
	appendDX()
	for i := n; i < len(trs); i++ {
		smTR = (smTR*float64(n-1) + trs[i]) / float64(n)
		smPlus = (smPlus*float64(n-1) + plusDM[i]) / float64(n)
		smMinus = (smMinus*float64(n-1) + minusDM[i]) / float64(n)
		appendDX()
	}

	return wilderSmooth(dxs, n)
}
