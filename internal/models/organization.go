package models

import "time"

// Organization represents a row of the organizations table.
type Organization struct {
	OrganizationID  string `db:"organization_id"`
	Name            string `db:"name"`
	LegalName       string `db:"legal_name"`
	Email           string `db:"email"`
	Phone           string `db:"phone"`
	Address         string `db:"address"`
	CurrencyCode    string `db:"currency_code"`
	FiscalYearStart int    `db:"fiscal_year_start"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}

// UserOrganization represents a row of the user_organizations join table.
type UserOrganization struct {
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}
