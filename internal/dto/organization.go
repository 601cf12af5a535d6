package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create a new organization.
type CreateOrganizationRequest struct {
	Name            string `json:"name" binding:"required"`
	LegalName       string `json:"legalName"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	CurrencyCode    string `json:"currencyCode" binding:"required,len=3"`
	FiscalYearStart int    `json:"fiscalYearStart" binding:"omitempty,min=1,max=12"`
}

// UpdateOrganizationRequest defines the data allowed for updating an organization.
type UpdateOrganizationRequest struct {
	Name      *string `json:"name"`
	LegalName *string `json:"legalName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// AddMemberRequest defines the data needed to add a user to an organization.
type AddMemberRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.OrganizationRole `json:"role" binding:"required,oneof=OWNER ADMIN ACCOUNTANT VIEWER"`
}

// UpdateMemberRoleRequest defines a role change for an existing member.
type UpdateMemberRoleRequest struct {
	Role domain.OrganizationRole `json:"role" binding:"required,oneof=OWNER ADMIN ACCOUNTANT VIEWER"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID  string    `json:"organizationID"`
	Name            string    `json:"name"`
	LegalName       string    `json:"legalName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	CurrencyCode    string    `json:"currencyCode"`
	FiscalYearStart int       `json:"fiscalYearStart"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `json:"createdBy"`
}

// MemberResponse defines the data returned for an organization membership.
type MemberResponse struct {
	UserID   string                  `json:"userID"`
	Role     domain.OrganizationRole `json:"role"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// ToOrganizationResponse converts a domain.Organization to OrganizationResponse DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:  org.OrganizationID,
		Name:            org.Name,
		LegalName:       org.LegalName,
		Email:           org.Email,
		Phone:           org.Phone,
		Address:         org.Address,
		CurrencyCode:    org.CurrencyCode,
		FiscalYearStart: org.FiscalYearStart,
		IsActive:        org.IsActive,
		CreatedAt:       org.CreatedAt,
		CreatedBy:       org.CreatedBy,
	}
}

// ToListOrganizationResponse converts a slice of domain.Organization to a slice of OrganizationResponse DTOs
func ToListOrganizationResponse(orgs []domain.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		res[i] = ToOrganizationResponse(&orgs[i])
	}
	return res
}

// ToMemberResponses converts memberships to MemberResponse DTOs.
func ToMemberResponses(members []domain.UserOrganization) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i, m := range members {
		res[i] = MemberResponse{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
	}
	return res
}
