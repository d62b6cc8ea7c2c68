package models

import (
	"context"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Installment : one scheduled partial payment obligation of a running
// account. Status is a pure function of PaidAmount vs Amount (see
// DeriveStatus); cancelled is the only status set out-of-band.
type Installment struct {
	ID        int64           `json:"id" bun:",pk,autoincrement"`
	AccountID int64           `json:"account_id" bun:",notnull"`
	Account   *RunningAccount `json:"-" bun:"rel:belongs-to,join:account_id=id"`

	Sequence      int             `json:"sequence" bun:",notnull"`
	Amount        decimal.Decimal `json:"amount" bun:"type:numeric(12,2),notnull"`
	DueDate       time.Time       `json:"due_date" bun:",notnull"`
	PaidDate      bun.NullTime    `json:"paid_date,omitempty"`
	PaidAmount    decimal.Decimal `json:"paid_amount" bun:"type:numeric(12,2),notnull,default:0"`
	Status        string          `json:"status" bun:",notnull,default:'pending'"`
	PaymentMethod string          `json:"payment_method,omitempty" bun:",nullzero"`
	Notes         string          `json:"notes,omitempty" bun:",nullzero"`

	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (i *Installment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// DeriveStatus maps the monetary facts to the stored status. Cancelled is
// terminal and sticks regardless of amounts.
func (i *Installment) DeriveStatus() string {
	if i.Status == common.InstallmentStatusCancelled {
		return common.InstallmentStatusCancelled
	}
	switch {
	case i.PaidAmount.GreaterThanOrEqual(i.Amount):
		return common.InstallmentStatusFullyPaid
	case i.PaidAmount.IsPositive():
		return common.InstallmentStatusPartiallyPaid
	default:
		return common.InstallmentStatusPending
	}
}

// EffectiveStatus layers the read-time overdue classification on top of the
// stored status: an unpaid installment past its due date reports as overdue
// without a stored transition.
func (i *Installment) EffectiveStatus(now time.Time) string {
	status := i.DeriveStatus()
	switch status {
	case common.InstallmentStatusPending, common.InstallmentStatusPartiallyPaid:
		if i.DueDate.Before(now.Truncate(24 * time.Hour)) {
			return common.InstallmentStatusOverdue
		}
	}
	return status
}

// Outstanding is the amount still owed on this installment.
func (i *Installment) Outstanding() decimal.Decimal {
	if i.Status == common.InstallmentStatusCancelled {
		return decimal.Zero
	}
	out := i.Amount.Sub(i.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

var _ bun.BeforeAppendModelHook = (*Installment)(nil)
