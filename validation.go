package partnership

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/sepandasadi/partnership/date"
)

// validate checks record struct tags. Money validates as its float value and
// Date as its string form so that "required" rejects the zero Date.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(Money); ok {
			return m.Float()
		}
		return nil
	}, Money{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(date.Date); ok && !d.IsZero() {
			return d.String()
		}
		return ""
	}, date.Date{})
	return v
}

// validationErrors turns validator errors into one error per failing field.
func validationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var errs error
	for _, fe := range verrs {
		errs = errors.Join(errs, fmt.Errorf("field %s fails %q (value %v)", fe.Namespace(), fe.Tag()+fieldParam(fe), fe.Value()))
	}
	return errs
}

func fieldParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return ""
	}
	return "=" + fe.Param()
}

// ValidatePartners checks every partner record. In strict mode it also checks
// that active partners' ownership sums to 100.
func ValidatePartners(partners []Partner, strict bool) error {
	var errs error
	seen := make(map[string]struct{}, len(partners))
	var ownership float64
	for _, p := range partners {
		if err := validate.Struct(p); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%w: partner %q: %w", ErrInvalidInput, p.ID, validationErrors(err)))
		}
		if _, dup := seen[p.ID]; dup {
			errs = errors.Join(errs, fmt.Errorf("%w: duplicate partner id %q", ErrInvalidInput, p.ID))
		}
		seen[p.ID] = struct{}{}
		if !p.ExitDate.IsZero() && p.ExitDate.Before(p.JoinDate) {
			errs = errors.Join(errs, fmt.Errorf("%w: partner %q exits on %s before joining on %s", ErrInvalidInput, p.ID, p.ExitDate, p.JoinDate))
		}
		if p.IsActive() {
			ownership += p.OwnershipPercent
		}
	}
	if strict {
		const tolerance = 1e-6
		if diff := ownership - 100; diff > tolerance || diff < -tolerance {
			errs = errors.Join(errs, fmt.Errorf("%w: active ownership sums to %v%%, want 100%%", ErrInvalidInput, ownership))
		}
	}
	return errs
}

// ValidateContribution checks a contribution record.
func ValidateContribution(c CapitalContribution) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: contribution %q of partner %q: %w", ErrInvalidInput, c.ID, c.PartnerID, validationErrors(err))
	}
	return nil
}

// ValidateDistribution checks a distribution record, including that its
// allocations add up to its total amount.
func ValidateDistribution(d Distribution) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: distribution %q on %s: %w", ErrInvalidInput, d.ID, d.Date, validationErrors(err))
	}
	var total Money
	for _, a := range d.Allocations {
		total = total.Add(a.Total())
	}
	if len(d.Allocations) > 0 && !total.Round().Equal(d.TotalAmount.Round()) {
		return fmt.Errorf("%w: distribution %q on %s allocates %s, want %s", ErrInvalidInput, d.ID, d.Date, total, d.TotalAmount)
	}
	return nil
}

// ValidateCashFlow checks a cash-flow entry.
func ValidateCashFlow(c CashFlowEntry) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: cash flow of partner %q: %w", ErrInvalidInput, c.PartnerID, validationErrors(err))
	}
	return nil
}
