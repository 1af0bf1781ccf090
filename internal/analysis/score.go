package analysis

import (
	"fmt"
	"strings"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

// Strategy universes. A ticker outside its strategy's universe scores zero
// regardless of its indicators, so the universes double as eligibility
// filters for pick runs.
var (
	conservativeTickers = map[string]struct{}{
		"PG": {}, "KO": {}, "PEP": {}, "WMT": {}, "JNJ": {},
		"PFE": {}, "XOM": {}, "CVX": {}, "JPM": {}, "BAC": {},
	}
	moonshotTickers = map[string]struct{}{
		"COIN": {}, "PLTR": {}, "DKNG": {}, "ROKU": {}, "SQ": {},
		"ARKK": {}, "NVDA": {}, "TSLA": {}, "AMD": {},
	}
	indexTickers = map[string]struct{}{
		"SPY": {}, "QQQ": {}, "IWM": {},
	}
)

// DefaultMinScore is the standard cutoff for a pick run. Runs that produce
// nothing above it fall back to zero to show best-effort candidates.
const DefaultMinScore = 30

// ATR multiples for price targets: a conservative swing aims lower than a
// moonshot swing.
const (
	conservativeATRTarget = 1.5
	moonshotATRTarget     = 3.0
)

// Eligible reports whether a ticker belongs to a strategy's universe.
func Eligible(ticker string, strategy models.Strategy) bool {
	switch strategy {
	case models.StrategyConservative:
		if _, ok := conservativeTickers[ticker]; ok {
			return true
		}
		_, ok := indexTickers[ticker]
		return ok
	case models.StrategyMoonshot:
		_, ok := moonshotTickers[ticker]
		return ok
	}
	return false
}

// FilterUniverse keeps only the tickers eligible for a strategy, preserving
// order.
func FilterUniverse(tickers []string, strategy models.Strategy) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if Eligible(t, strategy) {
			out = append(out, t)
		}
	}
	return out
}

// Score rates a ticker 0-100 for a strategy from its indicator snapshot and
// returns an ATR-based one-day price target plus the signals that drove the
// score.
//
// The structure is a trend gate followed by strategy-specific momentum and
// value terms, with a universal penalty for trading below the SMA200.
func Score(m models.Metrics, strategy models.Strategy) (score int, target float64, signals []string) {
	if m.Insufficient {
		return 0, 0, []string{"Insufficient Data"}
	}
	if !Eligible(m.Ticker, strategy) {
		return 0, m.Close, nil
	}

	trendScore := 0
	if m.Close > m.SMA50 {
		trendScore += 10
		if m.SMA50 > m.SMA200 {
			// golden-cross alignment
			trendScore += 10
		}
	}
	if m.ADX > 25 {
		trendScore += 10
		signals = append(signals, fmt.Sprintf("Strong Trend (ADX %.0f)", m.ADX))
	} else if m.ADX < 20 {
		trendScore -= 5
	}

	switch strategy {
	case models.StrategyConservative:
		// Pullback-in-uptrend profile: demand an established trend, then
		// reward fair-value or oversold RSI and punish rich entries.
		if trendScore >= 20 {
			score += 40

			switch {
			case m.RSI >= 40 && m.RSI <= 60:
				score += 20
				signals = append(signals, "Fair Value RSI")
			case m.RSI < 40:
				score += 30
				signals = append(signals, "Oversold Opportunity")
			case m.RSI > 70:
				score -= 20
			}

			if m.Volatility < 0.03 {
				score += 10
			} else {
				score -= 10
			}
		}

	case models.StrategyMoonshot:
		// Momentum-breakout profile: an emerging trend is enough, with
		// relative volume standing in for institutional interest.
		if trendScore >= 10 {
			score += 20
		}

		switch {
		case m.RVOL > 1.5:
			score += 25
			signals = append(signals, fmt.Sprintf("High Inst. Volume (%.1fx)", m.RVOL))
		case m.RVOL > 1.2:
			score += 10
		}

		switch {
		case m.RSI > 55 && m.RSI < 75:
			score += 25
			signals = append(signals, "Strong Momentum")
		case m.RSI > 80:
			// blow-off top risk
			score -= 10
		}

		if m.MACD > m.MACDSignal {
			score += 10
		}
	}

	if m.SMA200 > 0 && m.Close < m.SMA200 {
		score -= 20
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	atrVal := m.ATR
	if atrVal == 0 {
		atrVal = m.Close * 0.02
	}
	mult := conservativeATRTarget
	if strategy == models.StrategyMoonshot {
		mult = moonshotATRTarget
	}
	target = m.Close + atrVal*mult

	return score, target, signals
}

// BuildOpportunity turns a scored snapshot into a pick candidate, scaling
// the raw upside to the requested timeframe.
func BuildOpportunity(m models.Metrics, strategy models.Strategy, timeframe models.Timeframe) (models.Opportunity, int) {
	score, target, signals := Score(m, strategy)

	opp := models.Opportunity{
		Ticker:       m.Ticker,
		CurrentPrice: m.Close,
		Score:        score,
		Signals:      signals,
		Volatility:   m.Volatility,
		ADX:          m.ADX,
		RVOL:         m.RVOL,
	}

	if m.Close > 0 {
		rawUpside := (target - m.Close) / m.Close
		scaled := m.Close * (1 + rawUpside*timeframe.UpsideMultiplier())
		opp.TargetPrice = scaled
		opp.UpsidePct = (scaled - m.Close) / m.Close * 100
	}

	if m.VolSMA20 > 0 {
		opp.VolumeChange = (float64(m.Volume) - m.VolSMA20) / m.VolSMA20
	}

	return opp, score
}

// SignalsText flattens an opportunity's signals for persistence.
func SignalsText(signals []string) string {
	return strings.Join(signals, ", ")
}
