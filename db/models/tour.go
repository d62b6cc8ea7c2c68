package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Tour : Tour Model
type Tour struct {
	ID          int64           `json:"id" bun:",pk,autoincrement"`
	Name        string          `json:"name" bun:",notnull" validate:"required"`
	Destination string          `json:"destination" bun:",notnull" validate:"required"`
	Description string          `json:"description" bun:",nullzero"`
	StartDate   time.Time       `json:"start_date" bun:",notnull"`
	EndDate     time.Time       `json:"end_date" bun:",notnull"`
	Capacity    int             `json:"capacity" bun:",nullzero"`
	BasePrice   decimal.Decimal `json:"base_price" bun:"type:numeric(12,2),notnull"`
	Currency    string          `json:"currency" bun:",notnull"`
	Active      bool            `json:"active" bun:",notnull,default:true"`
	CreatedAt   time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime    `json:"updated_at"`
	DeletedAt   bun.NullTime    `json:"-"`
}
