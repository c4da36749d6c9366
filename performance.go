package partnership

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/sepandasadi/partnership/date"
	"golang.org/x/sync/errgroup"
)

// trailingMonths is the window of the cash-on-cash return.
const trailingMonths = 12

// PartnerPerformance summarizes a partner's investment on a date.
// It is always derived from the records, never stored.
type PartnerPerformance struct {
	PartnerID           string    `json:"partnerId"`
	Name                string    `json:"name"`
	On                  date.Date `json:"on"`
	TotalContributions  Money     `json:"totalContributions"`
	TotalDistributions  Money     `json:"totalDistributions"`
	UnreturnedCapital   Money     `json:"unreturnedCapital"`
	AccruedPreferred    Money     `json:"accruedPreferred"`
	CurrentEquity       Money     `json:"currentEquity"`
	ROI                 float64   `json:"roi"`
	MOIC                float64   `json:"moic"`
	IRR                 float64   `json:"irr"`
	CashOnCashReturn    float64   `json:"cashOnCashReturn"`
	HoldingPeriodMonths float64   `json:"holdingPeriodMonths"`
	AnnualizedReturn    float64   `json:"annualizedReturn"`

	// IRRErr holds why IRR could not be computed, IRR is 0 then.
	IRRErr   error  `json:"-"`
	IRRError string `json:"irrError,omitempty"`
}

// HasIRR reports whether IRR is defined.
func (p PartnerPerformance) HasIRR() bool { return p.IRRErr == nil }

// ComputePerformance derives a partner's performance on a date from the partnership records.
//
// Only records of this partner dated on or before 'on' are used; records of
// other partners are ignored. With no contribution ROI and MOIC are 0, and
// with a zero holding period the annualized return is 0.
func ComputePerformance(partner Partner, contributions []CapitalContribution, distributions []Distribution, cashFlows []CashFlowEntry, cfg WaterfallConfig, on date.Date) (PartnerPerformance, error) {
	var own []CapitalContribution
	for _, c := range contributions {
		if c.PartnerID == partner.ID {
			own = append(own, c)
		}
	}
	var dists []Distribution
	for _, d := range distributions {
		for _, a := range d.Allocations {
			if a.PartnerID == partner.ID {
				d.Allocations = []PartnerDistribution{a}
				dists = append(dists, d)
				break
			}
		}
	}
	j, err := newJournal([]Partner{partner}, own, dists)
	if err != nil {
		return PartnerPerformance{}, err
	}
	s := j.NewSnapshot(on)

	var flows []CashFlow
	for _, f := range partnerCashFlows(partner.ID, cashFlows) {
		if !f.Date.After(on) {
			flows = append(flows, f)
		}
	}
	return s.performance(partner, flows, cfg), nil
}

// performance computes the performance of a partner in the snapshot.
func (s *Snapshot) performance(partner Partner, flows []CashFlow, cfg WaterfallConfig) PartnerPerformance {
	perf := PartnerPerformance{
		PartnerID:          partner.ID,
		Name:               partner.Name,
		On:                 s.on,
		TotalContributions: s.Contributed(partner.ID),
		TotalDistributions: s.Distributed(partner.ID).Total(),
		UnreturnedCapital:  s.UnreturnedCapital(partner.ID),
		AccruedPreferred:   s.AccruedPreferred(partner.ID, cfg),
	}
	perf.CurrentEquity = perf.UnreturnedCapital.Add(perf.AccruedPreferred)

	if perf.TotalContributions.IsPositive() {
		contributed := perf.TotalContributions.Float()
		distributed := perf.TotalDistributions.Float()
		perf.ROI = (distributed - contributed) / contributed
		perf.MOIC = distributed / contributed
		trailing := s.DistributedIn(partner.ID, date.Trailing(s.on, trailingMonths))
		perf.CashOnCashReturn = trailing.Float() / contributed
	}

	end := s.on
	if partner.Status == Exited && !partner.ExitDate.IsZero() && partner.ExitDate.Before(end) {
		end = partner.ExitDate
	}
	if !partner.JoinDate.IsZero() {
		perf.HoldingPeriodMonths = math.Max(0, date.MonthsBetween(partner.JoinDate, end))
	}
	if perf.HoldingPeriodMonths > 0 {
		perf.AnnualizedReturn = math.Pow(1+perf.ROI, 12/perf.HoldingPeriodMonths) - 1
	}

	perf.IRR, perf.IRRErr = SolveIRR(flows)
	if perf.IRRErr != nil {
		perf.IRRErr = fmt.Errorf("irr of partner %q: %w", partner.ID, perf.IRRErr)
		perf.IRRError = perf.IRRErr.Error()
	}
	return perf
}

// Performance computes the performance of one partner on the snapshot's date.
func (s *Snapshot) Performance(partnerID string, cashFlows []CashFlowEntry, cfg WaterfallConfig) (PartnerPerformance, error) {
	partner, ok := s.journal.Partner(partnerID)
	if !ok {
		return PartnerPerformance{}, fmt.Errorf("%w: unknown partner %q", ErrInvalidState, partnerID)
	}
	var flows []CashFlow
	for _, f := range partnerCashFlows(partnerID, cashFlows) {
		if !f.Date.After(s.on) {
			flows = append(flows, f)
		}
	}
	return s.performance(partner, flows, cfg), nil
}

// Performances computes the performance of every partner concurrently, in partner order.
func (s *Snapshot) Performances(ctx context.Context, cashFlows []CashFlowEntry, cfg WaterfallConfig) ([]PartnerPerformance, error) {
	partners := s.journal.partners
	res := make([]PartnerPerformance, len(partners))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range partners {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perf, err := s.Performance(p.ID, cashFlows, cfg)
			if err != nil {
				return err
			}
			res[i] = perf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
