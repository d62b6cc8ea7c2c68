package service

import (
	"context"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
)

// StartOverdueSweepRoutine periodically re-derives the stored status of
// accounts whose installments have slipped past their due date, so list
// endpoints don't have to classify at read time. The sweep reuses the
// idempotent recompute.
func (svc *AgencyService) StartOverdueSweepRoutine(ctx context.Context) error {
	interval := time.Duration(svc.Config.OverdueSweepInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// run once at startup, then on the ticker
	svc.sweepOverdueAccounts(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			svc.sweepOverdueAccounts(ctx)
		}
	}
}

func (svc *AgencyService) sweepOverdueAccounts(ctx context.Context) {
	var accountIDs []int64
	err := svc.DB.NewSelect().
		Model((*models.Installment)(nil)).
		ColumnExpr("DISTINCT account_id").
		Where("due_date < ?", time.Now().Truncate(24*time.Hour)).
		Where("paid_amount < amount").
		Where("status IN (?, ?)", common.InstallmentStatusPending, common.InstallmentStatusPartiallyPaid).
		Scan(ctx, &accountIDs)
	if err != nil {
		svc.Logger.Errorf("Overdue sweep query failed: %v", err)
		return
	}

	svc.Logger.Infof("Overdue sweep: %d account(s) to recompute", len(accountIDs))
	for _, id := range accountIDs {
		if _, err := svc.RecomputeAccountStatus(ctx, id); err != nil {
			svc.Logger.Errorf("Overdue sweep: recompute of account %d failed: %v", id, err)
		}
	}
}
