package domain

import "time"

// Organization is the tenant root; every other business entity belongs to
// exactly one organization and all queries are scoped by organization id.
type Organization struct {
	OrganizationID  string `json:"organizationID"` // Primary Key (UUID)
	Name            string `json:"name"`
	LegalName       string `json:"legalName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	CurrencyCode    string `json:"currencyCode"`    // e.g. "USD"
	FiscalYearStart int    `json:"fiscalYearStart"` // Month 1-12
	IsActive        bool   `json:"isActive"`
	AuditFields
}

// OrganizationRole defines the possible roles a user can have within an
// organization.
type OrganizationRole string

const (
	RoleOwner      OrganizationRole = "OWNER"
	RoleAdmin      OrganizationRole = "ADMIN"
	RoleAccountant OrganizationRole = "ACCOUNTANT"
	RoleViewer     OrganizationRole = "VIEWER"
)

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string           `json:"userID"`
	OrganizationID string           `json:"organizationID"`
	Role           OrganizationRole `json:"role"`
	JoinedAt       time.Time        `json:"joinedAt"`
}
