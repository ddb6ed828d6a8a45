package axis

import (
	"math"
	"strconv"
	"strings"
)

// Tick is one labelled mark on the axis.
type Tick struct {
	Value float64 // template coordinate
	X     float64 // pixel position
	Label string
}

// Ticks returns round-number ticks inside the domain. The step is 1, 2 or 5
// times a power of ten chosen so that roughly TickCount ticks fit; the count
// is advisory.
func (m Model) Ticks() []Tick {
	start, stop, step := tickRange(m.DomainMin, m.DomainMax, m.TickCount)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}
	prec := precision(step)

	var out []Tick
	// Index-based stepping keeps float error from accumulating.
	n := int(math.Ceil((stop - start) / step))
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		out = append(out, Tick{Value: v, X: m.Scale(v), Label: FormatTick(v, prec)})
	}
	return out
}

// Step returns the tick spacing Ticks would use.
func (m Model) Step() float64 {
	_, _, step := tickRange(m.DomainMin, m.DomainMax, m.TickCount)
	return step
}

func tickRange(lo, hi float64, count int) (start, stop, step float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 {
		count = 10
	}
	span := hi - lo
	if span == 0 {
		return lo, lo, 0
	}
	step = math.Pow(10, math.Floor(math.Log10(span/float64(count))))
	switch e := float64(count) / span * step; {
	case e <= .15:
		step *= 10
	case e <= .35:
		step *= 5
	case e <= .75:
		step *= 2
	}
	start = math.Ceil(lo/step) * step
	stop = math.Floor(hi/step)*step + step*.5
	return start, stop, step
}

func precision(step float64) int {
	p := -int(math.Floor(math.Log10(step) + .01))
	if p < 0 {
		return 0
	}
	return p
}

// FormatTick renders v with prec decimals and comma thousands grouping,
// e.g. 12500 -> "12,500".
func FormatTick(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg && strings.Trim(s, "0.") != "" {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
