// Package locale holds the rounding and French formatting rules shared by
// dashboards and exported documents.
package locale

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
	printer  = message.NewPrinter(language.French)
)

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Tonnes converts kilograms to tonnes rounded to places.
func Tonnes(kg float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(kg).Div(thousand).Round(places).Float64()
	return f
}

// Percent returns part/total as a percentage rounded to places, or 0 when
// total is not positive.
func Percent(part, total float64, places int32) float64 {
	if total <= 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(total)).Mul(hundred).Round(places).Float64()
	return f
}

// Shares returns each part as a percentage of their sum rounded to places
// with the largest-remainder method, so a positive sum always yields shares
// adding up to exactly 100. Negative parts fall back to Percent.
func Shares(parts []float64, places int32) []float64 {
	out := make([]float64, len(parts))
	var sum float64
	for _, p := range parts {
		if p < 0 {
			whole := sumOf(parts)
			for i, q := range parts {
				out[i] = Percent(q, whole, places)
			}
			return out
		}
		sum += p
	}
	if sum <= 0 {
		return out
	}

	total := decimal.NewFromFloat(sum)
	floors := make([]decimal.Decimal, len(parts))
	rems := make([]decimal.Decimal, len(parts))
	allocated := decimal.Zero
	for i, p := range parts {
		exact := decimal.NewFromFloat(p).Div(total).Mul(hundred)
		floors[i] = exact.Truncate(places)
		rems[i] = exact.Sub(floors[i])
		allocated = allocated.Add(floors[i])
	}

	order := make([]int, len(parts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rems[order[a]].GreaterThan(rems[order[b]]) })

	step := decimal.New(1, -places)
	missing := int(hundred.Sub(allocated).Div(step).Round(0).IntPart())
	for k := 0; k < missing && k < len(order); k++ {
		floors[order[k]] = floors[order[k]].Add(step)
	}
	for i, f := range floors {
		out[i], _ = f.Float64()
	}
	return out
}

func sumOf(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// Multiply returns a×b rounded to places.
func Multiply(a, b float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(places).Float64()
	return f
}

// Number formats v with French grouping and a decimal comma.
func Number(v float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// PercentLabel formats a percentage the French way, e.g. "16,7 %".
func PercentLabel(v float64) string {
	return Number(v, 1) + " %"
}
