package date

import (
	"fmt"
	"strings"
)

// Period is a recurring calendar period, used to describe how often a partnership distributes.
type Period int

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "annually"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Months returns the length of the period in months.
func (p Period) Months() int {
	switch p {
	case Monthly:
		return 1
	case Quarterly:
		return 3
	default:
		return 12
	}
}

const (
	Monthly Period = iota
	Quarterly
	Yearly
)

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annually", "annual", "yearly", "year":
		return Yearly, nil
	default:
		return Quarterly, fmt.Errorf("unknown period %q", p)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
