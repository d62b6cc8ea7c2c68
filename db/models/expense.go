package models

import (
	"context"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const (
	ExpenseCategoryTransport = "transport"
	ExpenseCategoryLodging   = "lodging"
	ExpenseCategoryGuides    = "guides"
	ExpenseCategoryInsurance = "insurance"
	ExpenseCategoryMarketing = "marketing"
	ExpenseCategoryOffice    = "office"
	ExpenseCategoryTaxes     = "taxes"
	ExpenseCategoryOther     = "other"
)

var ExpenseCategories = []string{
	ExpenseCategoryTransport,
	ExpenseCategoryLodging,
	ExpenseCategoryGuides,
	ExpenseCategoryInsurance,
	ExpenseCategoryMarketing,
	ExpenseCategoryOffice,
	ExpenseCategoryTaxes,
	ExpenseCategoryOther,
}

// Expense : Expense Model. Independent of the installment engine but shares
// the reporting filter conventions.
type Expense struct {
	ID            int64           `json:"id" bun:",pk,autoincrement"`
	Description   string          `json:"description" bun:",notnull" validate:"required"`
	Category      string          `json:"category" bun:",notnull,default:'other'"`
	Amount        decimal.Decimal `json:"amount" bun:"type:numeric(12,2),notnull"`
	Currency      string          `json:"currency" bun:",notnull"`
	DueDate       time.Time       `json:"due_date" bun:",notnull"`
	PaidDate      bun.NullTime    `json:"paid_date,omitempty"`
	Status        string          `json:"status" bun:",notnull,default:'pending'"`
	PaymentMethod string          `json:"payment_method,omitempty" bun:",nullzero"`
	ReservationID int64           `json:"reservation_id,omitempty" bun:",nullzero"`
	Reservation   *Reservation    `json:"-" bun:"rel:belongs-to,join:reservation_id=id"`
	Provider      string          `json:"provider,omitempty" bun:",nullzero"`
	InvoiceNumber string          `json:"invoice_number,omitempty" bun:",nullzero"`

	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
	DeletedAt bun.NullTime `json:"-"`
}

func (e *Expense) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		e.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// DeriveStatus follows the same convention as installments: paid and
// cancelled stick, otherwise the due date decides between pending and
// overdue.
func (e *Expense) DeriveStatus(now time.Time) string {
	switch e.Status {
	case common.ExpenseStatusCancelled:
		return common.ExpenseStatusCancelled
	}
	if e.PaidDate.Time.IsZero() {
		if e.DueDate.Before(now.Truncate(24 * time.Hour)) {
			return common.ExpenseStatusOverdue
		}
		return common.ExpenseStatusPending
	}
	return common.ExpenseStatusPaid
}

func ValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

var _ bun.BeforeAppendModelHook = (*Expense)(nil)
