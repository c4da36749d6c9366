package partnership

import (
	"fmt"

	"github.com/sepandasadi/partnership/date"
)

// Role of a partner in the partnership.
type Role string

const (
	// GeneralPartner manages the deal and is entitled to the promote.
	GeneralPartner Role = "general_partner"
	// LimitedPartner is a passive investor.
	LimitedPartner Role = "limited_partner"
)

// Status of a partner.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
	Exited   Status = "exited"
)

// Partner is a member of the partnership.
//
// OwnershipPercent is a whole number between 0 and 100.
type Partner struct {
	ID               string    `json:"id" validate:"required"`
	Name             string    `json:"name"`
	OwnershipPercent float64   `json:"ownershipPercent" validate:"gte=0,lte=100"`
	InitialCapital   Money     `json:"initialCapital" validate:"gte=0"`
	Role             Role      `json:"role" validate:"oneof=general_partner limited_partner"`
	Status           Status    `json:"status" validate:"oneof=active inactive exited"`
	JoinDate         date.Date `json:"joinDate" validate:"required"`
	ExitDate         date.Date `json:"exitDate,omitzero"`
}

// IsActive reports whether the partner takes part in new distributions.
func (p Partner) IsActive() bool { return p.Status == Active }

// IsPromote reports whether the partner is designated to receive the promote.
func (p Partner) IsPromote() bool { return p.Role == GeneralPartner }

func (p Partner) String() string {
	if p.Name == "" {
		return p.ID
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}

// activePartners returns the active partners, in input order.
func activePartners(partners []Partner) []Partner {
	var res []Partner
	for _, p := range partners {
		if p.IsActive() {
			res = append(res, p)
		}
	}
	return res
}
