package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Invoice      InvoiceSvcFacade
	Bill         BillSvcFacade
	Payment      PaymentSvcFacade
	Customer     CustomerSvcFacade
	Vendor       VendorSvcFacade
	Item         ItemSvcFacade
	Tax          TaxSvcFacade
	Organization OrganizationSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	Reporting    ReportingService
}
