package partnership

import "github.com/sepandasadi/partnership/date"

// ContributionType describes why capital was contributed.
type ContributionType string

const (
	InitialContribution    ContributionType = "initial"
	AdditionalContribution ContributionType = "additional"
	CapitalCall            ContributionType = "capital_call"
)

// ContributionStatus tracks whether contributed capital was actually received.
type ContributionStatus string

const (
	Pending  ContributionStatus = "pending"
	Received ContributionStatus = "received"
	Verified ContributionStatus = "verified"
	Rejected ContributionStatus = "rejected"
)

// CapitalContribution records capital paid in by a partner.
type CapitalContribution struct {
	ID        string             `json:"id,omitempty"`
	PartnerID string             `json:"partnerId" validate:"required"`
	Date      date.Date          `json:"date" validate:"required"`
	Type      ContributionType   `json:"type" validate:"oneof=initial additional capital_call"`
	Amount    Money              `json:"amount" validate:"gt=0"`
	Status    ContributionStatus `json:"status" validate:"oneof=pending received verified rejected"`
}

// Counts reports whether the contribution is part of the partner's capital basis.
func (c CapitalContribution) Counts() bool {
	return c.Status == Received || c.Status == Verified
}
