package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	BillRepo         BillRepositoryFacade
	PaymentRepo      PaymentRepositoryFacade
	CustomerRepo     CustomerRepositoryFacade
	VendorRepo       VendorRepositoryFacade
	ItemRepo         ItemRepositoryFacade
	TaxRepo          TaxRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingRepository
}
