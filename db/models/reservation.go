package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Reservation : Reservation Model
//
// A reservation either references a catalog tour or carries its own inline
// tour fields (CustomTourName etc.). The total owed is always derived from
// head count and unit price, it is never stored.
type Reservation struct {
	ID     int64  `json:"id" bun:",pk,autoincrement"`
	Code   string `json:"code" bun:",notnull,unique"`
	TourID int64  `json:"tour_id,omitempty" bun:",nullzero"`
	Tour   *Tour  `json:"-" bun:"rel:belongs-to,join:tour_id=id"`

	CustomTourName        string       `json:"custom_tour_name,omitempty" bun:",nullzero"`
	CustomTourDestination string       `json:"custom_tour_destination,omitempty" bun:",nullzero"`
	CustomTourDescription string       `json:"custom_tour_description,omitempty" bun:",nullzero"`
	CustomTourStartDate   bun.NullTime `json:"custom_tour_start_date,omitempty"`
	CustomTourEndDate     bun.NullTime `json:"custom_tour_end_date,omitempty"`

	Date      time.Time       `json:"date" bun:",notnull"`
	HeadCount int             `json:"head_count" bun:",notnull" validate:"gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price" bun:"type:numeric(12,2),notnull"`
	Currency  string          `json:"currency" bun:",notnull"`
	Status    string          `json:"status" bun:",notnull,default:'pending'"`

	Documents []Document          `json:"documents,omitempty" bun:"rel:has-many,join:id=reservation_id"`
	Clients   []ReservationClient `json:"clients,omitempty" bun:"rel:has-many,join:id=reservation_id"`

	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
	DeletedAt bun.NullTime `json:"-"`
}

func (r *Reservation) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		r.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// TotalAmount is head count times unit price.
func (r *Reservation) TotalAmount() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.HeadCount)))
}

var _ bun.BeforeAppendModelHook = (*Reservation)(nil)
