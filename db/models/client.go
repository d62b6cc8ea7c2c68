package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Client : Client Model
type Client struct {
	ID             int64        `json:"id" bun:",pk,autoincrement"`
	FullName       string       `json:"full_name" bun:",notnull" validate:"required"`
	DocumentNumber string       `json:"document_number" bun:",notnull,unique" validate:"required"`
	Email          string       `json:"email" bun:",nullzero"`
	Phone          string       `json:"phone" bun:",nullzero"`
	CreatedAt      time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt      bun.NullTime `json:"updated_at"`
	DeletedAt      bun.NullTime `json:"-"`
}

func (c *Client) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		c.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Client)(nil)
