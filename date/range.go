package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Trailing returns the range of 'months' months ending on 'on' (boundaries included).
func Trailing(on Date, months int) Range {
	return Range{From: on.AddMonth(-months).Add(1), To: on}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// Days returns the number of days covered by the range, boundaries included.
func (r Range) Days() int { return DaysBetween(r.From, r.To) + 1 }

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
