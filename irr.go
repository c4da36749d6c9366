package partnership

import (
	"fmt"
	"math"
	"slices"

	"github.com/sepandasadi/partnership/date"
	"github.com/sirupsen/logrus"
)

// CashFlow is a dated signed amount used by the IRR solver.
type CashFlow struct {
	Date   date.Date
	Amount float64
}

const (
	minRate      = -0.999
	maxRate      = 10.0
	npvEpsilon   = 1e-6  // on amounts normalized by the largest absolute amount
	rateEpsilon  = 1e-10 // between two Newton iterations
	defaultGuess = 0.1
	defaultIter  = 100
	bisectIter   = 200
)

// IRRSolver finds internal rates of return. Its zero value is ready to use.
type IRRSolver struct {
	// Guess seeds Newton's method, 0.1 when zero.
	Guess float64
	// MaxIterations bounds Newton's method, 100 when zero.
	MaxIterations int
}

// SolveIRR returns the annual rate that zeroes the XNPV of the cash flows,
// using the default solver.
func SolveIRR(flows []CashFlow) (float64, error) {
	return IRRSolver{}.Solve(flows)
}

// XNPV returns the net present value of the cash flows at 'rate', discounting
// each amount by (1+rate)^(days/365) from the earliest date.
func XNPV(rate float64, flows []CashFlow) float64 {
	p := newPresentValue(flows)
	return p.npv(rate) * p.scale
}

// Solve returns the annual rate that zeroes the XNPV of the cash flows.
//
// It runs Newton's method from the guess and falls back to bisection when
// Newton diverges, leaves [-0.999, 10] or does not converge. It fails with
// ErrNoSolution when the flows are not of mixed sign or all fall on the same
// date, and ErrNoConvergence when no root can be bracketed.
func (s IRRSolver) Solve(flows []CashFlow) (float64, error) {
	var hasNeg, hasPos bool
	for _, f := range flows {
		hasNeg = hasNeg || f.Amount < 0
		hasPos = hasPos || f.Amount > 0
	}
	if !hasNeg || !hasPos {
		return 0, fmt.Errorf("%w: %d cash flows need at least one negative and one positive amount", ErrNoSolution, len(flows))
	}
	if !slices.ContainsFunc(flows, func(f CashFlow) bool { return !f.Date.Equal(flows[0].Date) }) {
		return 0, fmt.Errorf("%w: %d cash flows all on %s do not depend on the rate", ErrNoSolution, len(flows), flows[0].Date)
	}
	guess, iterations := s.Guess, s.MaxIterations
	if guess == 0 {
		guess = defaultGuess
	}
	if iterations <= 0 {
		iterations = defaultIter
	}

	p := newPresentValue(flows)
	if rate, ok := p.newton(guess, iterations); ok {
		return rate, nil
	}
	logger.WithFields(logrus.Fields{"flows": len(flows), "guess": guess}).Debug("newton did not converge, falling back to bisection")
	if rate, ok := p.bisect(); ok {
		return rate, nil
	}
	return 0, fmt.Errorf("%w: no rate in [%v, %v] zeroes the NPV of %d cash flows", ErrNoConvergence, minRate, maxRate, len(flows))
}

// presentValue holds cash flows as (years since first flow, normalized amount).
type presentValue struct {
	years   []float64
	amounts []float64
	scale   float64
}

func newPresentValue(flows []CashFlow) presentValue {
	p := presentValue{scale: 1}
	if len(flows) == 0 {
		return p
	}
	first := slices.MinFunc(flows, func(a, b CashFlow) int { return a.Date.Compare(b.Date) }).Date
	for _, f := range flows {
		p.scale = math.Max(p.scale, math.Abs(f.Amount))
	}
	for _, f := range flows {
		p.years = append(p.years, float64(date.DaysBetween(first, f.Date))/365)
		p.amounts = append(p.amounts, f.Amount/p.scale)
	}
	return p
}

func (p presentValue) npv(rate float64) float64 {
	var v float64
	for i, a := range p.amounts {
		v += a / math.Pow(1+rate, p.years[i])
	}
	return v
}

// derivative is d(npv)/d(rate).
func (p presentValue) derivative(rate float64) float64 {
	var v float64
	for i, a := range p.amounts {
		t := p.years[i]
		v -= t * a / math.Pow(1+rate, t+1)
	}
	return v
}

func (p presentValue) newton(rate float64, iterations int) (float64, bool) {
	for range iterations {
		v := p.npv(rate)
		if math.Abs(v) < npvEpsilon {
			return rate, true
		}
		d := p.derivative(rate)
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, false
		}
		next := rate - v/d
		if math.IsNaN(next) || next < minRate || next > maxRate {
			return 0, false
		}
		if math.Abs(next-rate) < rateEpsilon {
			return next, true
		}
		rate = next
	}
	return 0, false
}

// bisect scans [minRate, maxRate] for a sign change and bisects the first bracket found.
func (p presentValue) bisect() (float64, bool) {
	const steps = 1000
	lo := minRate
	vlo := p.npv(lo)
	for i := 1; i <= steps; i++ {
		hi := minRate + (maxRate-minRate)*float64(i)/steps
		vhi := p.npv(hi)
		if math.Abs(vhi) < npvEpsilon {
			return hi, true
		}
		if vlo*vhi < 0 {
			return p.bisectBracket(lo, hi, vlo), true
		}
		lo, vlo = hi, vhi
	}
	return 0, false
}

func (p presentValue) bisectBracket(lo, hi, vlo float64) float64 {
	mid := (lo + hi) / 2
	for range bisectIter {
		mid = (lo + hi) / 2
		vmid := p.npv(mid)
		if math.Abs(vmid) < npvEpsilon || hi-lo < rateEpsilon {
			return mid
		}
		if vlo*vmid < 0 {
			hi = mid
		} else {
			lo, vlo = mid, vmid
		}
	}
	return mid
}
