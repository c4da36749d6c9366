package partnership

import (
	"errors"
	"strings"
	"testing"

	"github.com/sepandasadi/partnership/date"
)

func TestValidatePartners(t *testing.T) {
	exited := lp("old", 30)
	exited.Status = Exited
	exited.ExitDate = D("2024-06-30")

	backwards := lp("lp", 80)
	backwards.ExitDate = D("2023-01-01")

	noJoin := lp("lp", 80)
	noJoin.JoinDate = date.Date{}

	badRole := lp("lp", 80)
	badRole.Role = "observer"

	tests := []struct {
		name     string
		partners []Partner
		strict   bool
		wantErr  bool
	}{
		{"sums to 100", []Partner{gp("gp", 20), lp("lp", 80)}, true, false},
		{"exited partners do not count", []Partner{gp("gp", 20), lp("lp", 80), exited}, true, false},
		{"does not sum to 100", []Partner{gp("gp", 20), lp("lp", 70)}, true, true},
		{"lenient sum", []Partner{gp("gp", 20), lp("lp", 70)}, false, false},
		{"duplicate id", []Partner{lp("lp", 50), lp("lp", 50)}, false, true},
		{"exit before join", []Partner{gp("gp", 20), backwards}, false, true},
		{"missing join date", []Partner{gp("gp", 20), noJoin}, false, true},
		{"unknown role", []Partner{gp("gp", 20), badRole}, false, true},
		{"ownership above 100", []Partner{lp("lp", 120)}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePartners(tt.partners, tt.strict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePartners() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ValidatePartners() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestValidatePartners_ReportsEveryField(t *testing.T) {
	p := Partner{ID: "p", OwnershipPercent: 120, Role: "observer", Status: Active}
	err := ValidatePartners([]Partner{p}, false)
	if err == nil {
		t.Fatal("ValidatePartners() error = nil, want an error")
	}
	for _, field := range []string{"OwnershipPercent", "Role", "JoinDate"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("ValidatePartners() error = %q, want it to mention %s", err, field)
		}
	}
}

func TestValidateDistribution(t *testing.T) {
	valid := Distribution{ID: "d", Date: D("2024-01-01"), TotalAmount: M(100), Allocations: []PartnerDistribution{
		{PartnerID: "a", ReturnOfCapital: M(60)},
		{PartnerID: "b", RemainingProfit: M(40)},
	}}
	if err := ValidateDistribution(valid); err != nil {
		t.Errorf("ValidateDistribution(valid) error = %v", err)
	}

	unbalanced := valid
	unbalanced.TotalAmount = M(101)
	if err := ValidateDistribution(unbalanced); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ValidateDistribution(unbalanced) error = %v, want ErrInvalidInput", err)
	}

	negative := valid
	negative.Allocations = []PartnerDistribution{{PartnerID: "a", ReturnOfCapital: M(110)}, {PartnerID: "b", Catchup: M(-10)}}
	if err := ValidateDistribution(negative); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ValidateDistribution(negative tier) error = %v, want ErrInvalidInput", err)
	}

	undated := valid
	undated.Date = date.Date{}
	if err := ValidateDistribution(undated); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ValidateDistribution(undated) error = %v, want ErrInvalidInput", err)
	}
}

func TestValidateContribution(t *testing.T) {
	c := contribution("lp", "2024-01-01", 1000)
	if err := ValidateContribution(c); err != nil {
		t.Errorf("ValidateContribution(valid) error = %v", err)
	}
	c.Status = "lost"
	if err := ValidateContribution(c); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ValidateContribution(unknown status) error = %v, want ErrInvalidInput", err)
	}
}
