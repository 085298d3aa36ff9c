package output

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places labelled major ticks on round values and unlabelled
// minor ticks between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	nTicks := t.NSuggestedTicks
	if nTicks < 2 {
		nTicks = 4
	}
	if max <= min {
		return nil
	}

	step := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / step
	for n < float64(nTicks-1) {
		step /= 10
		n = (max - min) / step
	}

	mult := int(n / float64(nTicks-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	major := float64(mult) * step
	prec := int(math.Ceil(math.Log10(math.Max(math.Abs(min), math.Abs(max)))) - math.Floor(math.Log10(major)))

	var ticks []plot.Tick
	majors := make(map[float64]bool)
	for v := math.Ceil(min/major) * major; v <= max; v += major {
		r := roundTo(v, prec)
		majors[r] = true
		ticks = append(ticks, plot.Tick{Value: r, Label: strconv.FormatFloat(r, 'g', -1, 64)})
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
	for v := math.Ceil(min/minor) * minor; v <= max; v += minor {
		if !majors[roundTo(v, prec)] {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// roundTo rounds x to prec decimal places, half away from zero.
func roundTo(x float64, prec int) float64 {
	if x == 0 || (prec >= 0 && x == math.Trunc(x)) {
		return x
	}
	pow := math.Pow10(prec)
	scaled := x * pow
	if math.IsInf(scaled, 0) {
		return x
	}
	r := math.Round(scaled) / pow
	if r == 0 {
		return 0
	}
	return r
}
