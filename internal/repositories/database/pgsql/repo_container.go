package pgsql

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	billRepo := newPgxBillRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	vendorRepo := newPgxVendorRepository(dbPool)
	itemRepo := newPgxItemRepository(dbPool)
	taxRepo := newPgxTaxRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		InvoiceRepo:      invoiceRepo,
		BillRepo:         billRepo,
		PaymentRepo:      paymentRepo,
		CustomerRepo:     customerRepo,
		VendorRepo:       vendorRepo,
		ItemRepo:         itemRepo,
		TaxRepo:          taxRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}
