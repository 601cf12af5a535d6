package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first since every other service delegates its
	// role checks to it.
	container.Organization = NewOrganizationService(repos.OrganizationRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	container.Account = NewAccountService(repos.AccountRepo, container.Organization)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Organization)

	container.Customer = NewCustomerService(repos.CustomerRepo, container.Organization)
	container.Vendor = NewVendorService(repos.VendorRepo, container.Organization)
	container.Item = NewItemService(repos.ItemRepo, container.Organization)
	container.Tax = NewTaxService(repos.TaxRepo, container.Organization)

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.CustomerRepo, repos.ItemRepo, container.Organization)
	container.Bill = NewBillService(repos.BillRepo, repos.VendorRepo, repos.ItemRepo, container.Organization)
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.InvoiceRepo,
		repos.BillRepo,
		repos.CustomerRepo,
		repos.VendorRepo,
		repos.AccountRepo,
		container.Organization,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, container.Organization)

	return container
}
