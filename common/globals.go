package common

const (
	AccountStatusPending    = "pending"
	AccountStatusInProgress = "in_progress"
	AccountStatusPaid       = "paid"
	AccountStatusOverdue    = "overdue"
	AccountStatusCancelled  = "cancelled"

	InstallmentStatusPending       = "pending"
	InstallmentStatusPartiallyPaid = "partially_paid"
	InstallmentStatusFullyPaid     = "fully_paid"
	InstallmentStatusOverdue       = "overdue"
	InstallmentStatusCancelled     = "cancelled"

	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"

	ExpenseStatusPending   = "pending"
	ExpenseStatusPaid      = "paid"
	ExpenseStatusOverdue   = "overdue"
	ExpenseStatusCancelled = "cancelled"

	PaymentMethodCash       = "cash"
	PaymentMethodTransfer   = "transfer"
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodDeposit    = "deposit"
	PaymentMethodCheck      = "check"
	PaymentMethodECheck     = "e_check"
	PaymentMethodOther      = "other"

	DocumentTypeBudget     = "budget"
	DocumentTypeVoucher    = "voucher"
	DocumentTypeTicket     = "ticket"
	DocumentTypeInsurance  = "insurance"
	DocumentTypeInvoice    = "invoice"
	DocumentTypeSettlement = "settlement"
	DocumentTypeOther      = "other"

	ClientRolePrimary   = "primary"
	ClientRoleCompanion = "companion"

	PaymentTopicPosted = "payment_posted"
)

// Fixed enum orderings used wherever grouped output must be reproducible.
var (
	AccountStatuses = []string{
		AccountStatusPending,
		AccountStatusInProgress,
		AccountStatusPaid,
		AccountStatusOverdue,
		AccountStatusCancelled,
	}
	InstallmentStatuses = []string{
		InstallmentStatusPending,
		InstallmentStatusPartiallyPaid,
		InstallmentStatusFullyPaid,
		InstallmentStatusOverdue,
		InstallmentStatusCancelled,
	}
	PaymentMethods = []string{
		PaymentMethodCash,
		PaymentMethodTransfer,
		PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodDeposit,
		PaymentMethodCheck,
		PaymentMethodECheck,
		PaymentMethodOther,
	}
	DocumentTypes = []string{
		DocumentTypeBudget,
		DocumentTypeVoucher,
		DocumentTypeTicket,
		DocumentTypeInsurance,
		DocumentTypeInvoice,
		DocumentTypeSettlement,
		DocumentTypeOther,
	}
)

func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func ValidDocumentType(docType string) bool {
	for _, t := range DocumentTypes {
		if t == docType {
			return true
		}
	}
	return false
}
