package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:  d.OrganizationID,
		Name:            d.Name,
		LegalName:       d.LegalName,
		Email:           d.Email,
		Phone:           d.Phone,
		Address:         d.Address,
		CurrencyCode:    d.CurrencyCode,
		FiscalYearStart: d.FiscalYearStart,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:  m.OrganizationID,
		Name:            m.Name,
		LegalName:       m.LegalName,
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         m.Address,
		CurrencyCode:    m.CurrencyCode,
		FiscalYearStart: m.FiscalYearStart,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations to domain Organizations
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}

// ToModelUserOrganization converts a domain UserOrganization to a model UserOrganization
func ToModelUserOrganization(d domain.UserOrganization) models.UserOrganization {
	return models.UserOrganization{
		UserID:         d.UserID,
		OrganizationID: d.OrganizationID,
		Role:           string(d.Role),
		JoinedAt:       d.JoinedAt,
	}
}

// ToDomainUserOrganization converts a model UserOrganization to a domain UserOrganization
func ToDomainUserOrganization(m models.UserOrganization) domain.UserOrganization {
	return domain.UserOrganization{
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           domain.OrganizationRole(m.Role),
		JoinedAt:       m.JoinedAt,
	}
}

// ToDomainUserOrganizationSlice converts model memberships to domain memberships
func ToDomainUserOrganizationSlice(ms []models.UserOrganization) []domain.UserOrganization {
	ds := make([]domain.UserOrganization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserOrganization(m)
	}
	return ds
}
