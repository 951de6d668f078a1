package calculator

import (
	"errors"
	"math"

	"TradeFolder/internal/model"
)

var ErrNoBars = errors.New("no bars provided")

// Range returns the highest high and lowest low of the series.
func Range(bars model.Series) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrNoBars
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// Change returns the percentage move from the first open to the last close.
func Change(bars model.Series) (float64, error) {
	if len(bars) == 0 {
		return 0, ErrNoBars
	}
	first := bars[0].Open
	if first == 0 {
		return 0, errors.New("first open is zero")
	}
	return (bars[len(bars)-1].Close - first) / first * 100, nil
}

// Position returns where price sits within [low, high], clamped to 0.0~1.0.
func Position(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
