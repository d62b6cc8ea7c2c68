package migrations

import (
	"context"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/uptrace/bun"
)

/* This init reflects the latest model fields when run on a fresh db.
Make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors. */
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, model := range []interface{}{
			(*models.User)(nil),
			(*models.Client)(nil),
			(*models.Tour)(nil),
			(*models.Reservation)(nil),
			(*models.ReservationClient)(nil),
			(*models.Document)(nil),
			(*models.RunningAccount)(nil),
			(*models.Installment)(nil),
			(*models.Payment)(nil),
			(*models.Expense)(nil),
		} {
			if _, err := db.NewCreateTable().Model(model).Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	}, nil)
}
