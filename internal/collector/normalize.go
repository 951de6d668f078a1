package collector

import (
	"time"

	"github.com/shopspring/decimal"

	"TradeFolder/internal/model"
)

// Normalize converts provider rows into canonical bars. Row order is kept as
// delivered. When decimals > 0 prices are rounded half away from zero to that
// many places; otherwise they keep the provider's precision. The result is
// never nil so an empty fetch still serializes as [].
func Normalize(raw []RawBar, decimals int32) model.Series {
	out := make(model.Series, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.Bar{
			Time:  r.Time.UTC().Unix(),
			Open:  roundPrice(r.Open, decimals),
			High:  roundPrice(r.High, decimals),
			Low:   roundPrice(r.Low, decimals),
			Close: roundPrice(r.Close, decimals),
		})
	}
	return out
}

// Denormalize turns canonical bars back into provider rows.
func Denormalize(s model.Series) []RawBar {
	out := make([]RawBar, len(s))
	for i, b := range s {
		out[i] = RawBar{
			Time:  time.Unix(b.Time, 0).UTC(),
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
		}
	}
	return out
}

func roundPrice(v float64, decimals int32) float64 {
	if decimals <= 0 {
		return v
	}
	return decimal.NewFromFloat(v).Round(decimals).InexactFloat64()
}
