package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// RunningAccount : per-reservation ledger tracking total owed, down payment
// and the balance remaining across installments.
//
// PendingBalance is always recomputed as
// total - down payment - sum(paid over non-cancelled installments);
// it is never edited independently.
type RunningAccount struct {
	ID            int64        `json:"id" bun:",pk,autoincrement"`
	ReservationID int64        `json:"reservation_id" bun:",notnull,unique"`
	Reservation   *Reservation `json:"-" bun:"rel:belongs-to,join:reservation_id=id"`
	ClientID      int64        `json:"client_id" bun:",notnull"`
	Client        *Client      `json:"client,omitempty" bun:"rel:belongs-to,join:client_id=id"`

	TotalAmount      decimal.Decimal `json:"total_amount" bun:"type:numeric(12,2),notnull"`
	DownPayment      decimal.Decimal `json:"down_payment" bun:"type:numeric(12,2),notnull,default:0"`
	PendingBalance   decimal.Decimal `json:"pending_balance" bun:"type:numeric(12,2),notnull"`
	Currency         string          `json:"currency" bun:",notnull"`
	InstallmentCount int             `json:"installment_count" bun:",notnull,default:0"`
	Status           string          `json:"status" bun:",notnull,default:'pending'"`

	Installments []Installment `json:"installments,omitempty" bun:"rel:has-many,join:id=account_id"`

	RescheduledAt bun.NullTime `json:"rescheduled_at,omitempty"`
	Notes         string       `json:"notes,omitempty" bun:",nullzero"`

	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (a *RunningAccount) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*RunningAccount)(nil)
