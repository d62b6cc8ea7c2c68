package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment : immutable audit record of one installment settlement event.
// ReceiptNumber comes from a database sequence and is globally monotonic;
// the 1:1 unique constraint on InstallmentID enforces one payment per
// installment.
type Payment struct {
	ID            int64           `json:"id" bun:",pk,autoincrement"`
	ReceiptNumber int64           `json:"receipt_number" bun:",notnull,unique"`
	ReceiptCode   string          `json:"receipt_code" bun:",notnull,unique"`
	AccountID     int64           `json:"account_id" bun:",notnull"`
	Account       *RunningAccount `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	InstallmentID int64           `json:"installment_id" bun:",notnull,unique"`
	Installment   *Installment    `json:"-" bun:"rel:belongs-to,join:installment_id=id"`
	ClientID      int64           `json:"client_id" bun:",notnull"`
	Client        *Client         `json:"client,omitempty" bun:"rel:belongs-to,join:client_id=id"`
	RecordedByID  int64           `json:"recorded_by_id,omitempty" bun:",nullzero"`
	RecordedBy    *User           `json:"-" bun:"rel:belongs-to,join:recorded_by_id=id"`

	Amount      decimal.Decimal        `json:"amount" bun:"type:numeric(12,2),notnull"`
	Method      string                 `json:"method" bun:",notnull"`
	PaymentDate time.Time              `json:"payment_date" bun:",notnull"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" bun:"type:jsonb,nullzero"`
	Notes       string                 `json:"notes,omitempty" bun:",nullzero"`

	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
