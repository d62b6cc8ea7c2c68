package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/money"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type OpenAccountParams struct {
	ReservationID        int64           `json:"reservation_id" validate:"required"`
	ClientID             int64           `json:"client_id" validate:"required"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	DownPayment          decimal.Decimal `json:"down_payment"`
	InstallmentCount     int             `json:"installment_count"`
	FirstDueDate         time.Time       `json:"first_due_date"`
	ScheduleIntervalDays int             `json:"schedule_interval_days"`
}

// OpenAccount creates the running account for a reservation together with
// its installment schedule. The account and every installment are written
// in one transaction; on any failure nothing is persisted.
func (svc *AgencyService) OpenAccount(ctx context.Context, p OpenAccountParams) (*models.RunningAccount, error) {
	if p.DownPayment.IsNegative() {
		return nil, fmt.Errorf("%w: down payment must not be negative", ErrInvalidAmount)
	}

	reservation, err := svc.FindReservation(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	// no explicit total means billing the reservation price as-is
	if p.TotalAmount.IsZero() {
		p.TotalAmount = reservation.TotalAmount()
	}
	if !p.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrInvalidAmount)
	}
	if reservation.Status == common.ReservationStatusCancelled {
		return nil, fmt.Errorf("%w: reservation %s is cancelled", ErrConfiguration, reservation.Code)
	}
	if err := money.CheckCurrency(reservation.Currency); err != nil {
		return nil, err
	}
	if _, err := svc.FindClient(ctx, p.ClientID); err != nil {
		return nil, err
	}

	exists, err := svc.DB.NewSelect().
		Model((*models.RunningAccount)(nil)).
		Where("reservation_id = ?", p.ReservationID).
		Exists(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: reservation %d", ErrDuplicateAccount, p.ReservationID)
	}

	remainder := p.TotalAmount.Sub(p.DownPayment)
	if remainder.IsNegative() {
		return nil, fmt.Errorf("%w: down payment %s exceeds total %s", ErrInvalidAmount, p.DownPayment, p.TotalAmount)
	}
	if p.InstallmentCount == 0 && remainder.IsPositive() {
		return nil, fmt.Errorf("%w: %s remains unscheduled with zero installments", ErrConfiguration, remainder)
	}

	var amounts []decimal.Decimal
	if p.InstallmentCount > 0 {
		amounts, err = money.SplitEqually(p.TotalAmount, p.DownPayment, p.InstallmentCount)
		if err != nil {
			return nil, err
		}
	}

	interval := p.ScheduleIntervalDays
	if interval < 0 {
		return nil, fmt.Errorf("%w: schedule interval must not be negative, got %d days", ErrConfiguration, interval)
	}
	if interval == 0 {
		interval = svc.Config.ScheduleIntervalDays
	}

	account := &models.RunningAccount{
		ReservationID:    p.ReservationID,
		ClientID:         p.ClientID,
		TotalAmount:      p.TotalAmount,
		DownPayment:      p.DownPayment,
		PendingBalance:   remainder,
		Currency:         reservation.Currency,
		InstallmentCount: p.InstallmentCount,
		Status:           common.AccountStatusPending,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(account).Exec(ctx); err != nil {
			return err
		}
		for i, amount := range amounts {
			installment := models.Installment{
				AccountID: account.ID,
				Sequence:  i + 1,
				Amount:    amount,
				DueDate:   dueDateFor(p.FirstDueDate, interval, i),
				Status:    common.InstallmentStatusPending,
			}
			if _, err := tx.NewInsert().Model(&installment).Exec(ctx); err != nil {
				return err
			}
			account.Installments = append(account.Installments, installment)
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: reservation %d", ErrDuplicateAccount, p.ReservationID)
		}
		return nil, translateDBError(err)
	}

	svc.Logger.Infof("Opened account %d for reservation %s: total %s, %d installments", account.ID, reservation.Code, p.TotalAmount, p.InstallmentCount)
	return account, nil
}

// dueDateFor advances the schedule from the first due date. A 30-day
// interval means calendar months so a schedule starting on the 1st stays
// on the 1st.
func dueDateFor(first time.Time, intervalDays, index int) time.Time {
	if intervalDays == 30 {
		return first.AddDate(0, index, 0)
	}
	return first.AddDate(0, 0, index*intervalDays)
}

// PendingBalanceFor computes the balance invariant:
// total - down payment - sum of paid amounts over non-cancelled
// installments.
func PendingBalanceFor(account *models.RunningAccount, installments []models.Installment) decimal.Decimal {
	balance := account.TotalAmount.Sub(account.DownPayment)
	for _, i := range installments {
		if i.Status == common.InstallmentStatusCancelled {
			continue
		}
		balance = balance.Sub(i.PaidAmount)
	}
	return balance
}

// DeriveAccountStatus is the pure status derivation, in priority order:
// cancelled, paid, overdue, in_progress, pending.
func DeriveAccountStatus(account *models.RunningAccount, installments []models.Installment, pendingBalance decimal.Decimal, now time.Time) string {
	if account.Status == common.AccountStatusCancelled {
		return common.AccountStatusCancelled
	}
	if !pendingBalance.IsPositive() {
		return common.AccountStatusPaid
	}
	today := now.Truncate(24 * time.Hour)
	inProgress := false
	for _, i := range installments {
		if i.Status == common.InstallmentStatusCancelled {
			continue
		}
		if i.PaidAmount.LessThan(i.Amount) && i.DueDate.Before(today) {
			return common.AccountStatusOverdue
		}
		if i.PaidAmount.IsPositive() {
			inProgress = true
		}
	}
	if inProgress {
		return common.AccountStatusInProgress
	}
	return common.AccountStatusPending
}

// RecomputeAccountStatus re-derives the pending balance and status from the
// installment facts and persists them. Idempotent: with no new payments a
// second call yields the same result.
func (svc *AgencyService) RecomputeAccountStatus(ctx context.Context, accountID int64) (*models.RunningAccount, error) {
	var account *models.RunningAccount
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		account, txErr = recomputeAccount(ctx, tx, accountID, time.Now())
		return txErr
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	return account, nil
}

func recomputeAccount(ctx context.Context, db bun.IDB, accountID int64, now time.Time) (*models.RunningAccount, error) {
	account := new(models.RunningAccount)
	err := db.NewSelect().Model(account).Where("running_account.id = ?", accountID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	var installments []models.Installment
	err = db.NewSelect().Model(&installments).Where("account_id = ?", accountID).Order("sequence ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	account.PendingBalance = PendingBalanceFor(account, installments)
	account.Status = DeriveAccountStatus(account, installments, account.PendingBalance, now)
	account.Installments = installments

	_, err = db.NewUpdate().Model(account).
		Column("pending_balance", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (svc *AgencyService) FindAccount(ctx context.Context, accountID int64) (*models.RunningAccount, error) {
	account := new(models.RunningAccount)
	err := svc.DB.NewSelect().Model(account).
		Relation("Client").
		Relation("Installments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("sequence ASC")
		}).
		Where("running_account.id = ?", accountID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return account, nil
}

func (svc *AgencyService) FindAccountByReservation(ctx context.Context, reservationID int64) (*models.RunningAccount, error) {
	account := new(models.RunningAccount)
	err := svc.DB.NewSelect().Model(account).
		Relation("Installments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("sequence ASC")
		}).
		Where("running_account.reservation_id = ?", reservationID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return account, nil
}

// CancelAccount marks the account cancelled and cancels its installments
// that carry no payments. Installments with collected money keep their
// status so the payment history stays intact.
func (svc *AgencyService) CancelAccount(ctx context.Context, accountID int64) (*models.RunningAccount, error) {
	var account *models.RunningAccount
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		account = new(models.RunningAccount)
		err := tx.NewSelect().Model(account).Where("running_account.id = ?", accountID).For("UPDATE").Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		_, err = tx.NewUpdate().Model((*models.Installment)(nil)).
			Set("status = ?", common.InstallmentStatusCancelled).
			Set("updated_at = ?", time.Now()).
			Where("account_id = ? AND paid_amount = 0 AND status != ?", accountID, common.InstallmentStatusCancelled).
			Exec(ctx)
		if err != nil {
			return err
		}
		account.Status = common.AccountStatusCancelled
		if _, err := tx.NewUpdate().Model(account).Column("status", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		account, err = recomputeAccount(ctx, tx, accountID, time.Now())
		return err
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	svc.Logger.Infof("Cancelled account %d", accountID)
	return account, nil
}

// CancelInstallment is the administrative out-of-band cancel of a single
// installment. Terminal; the owning account is recomputed in the same
// transaction.
func (svc *AgencyService) CancelInstallment(ctx context.Context, installmentID int64) (*models.Installment, error) {
	installment := new(models.Installment)
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(installment).Where("installment.id = ?", installmentID).For("UPDATE").Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		if installment.PaidAmount.IsPositive() {
			return fmt.Errorf("%w: installment %d has collected payments", ErrConfiguration, installmentID)
		}
		installment.Status = common.InstallmentStatusCancelled
		if _, err := tx.NewUpdate().Model(installment).Column("status", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		_, err = recomputeAccount(ctx, tx, installment.AccountID, time.Now())
		return err
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	return installment, nil
}

type RescheduleAccountParams struct {
	TotalAmount          decimal.Decimal `json:"total_amount"`
	DownPayment          decimal.Decimal `json:"down_payment"`
	InstallmentCount     int             `json:"installment_count" validate:"required,gte=1"`
	FirstDueDate         time.Time       `json:"first_due_date"`
	ScheduleIntervalDays int             `json:"schedule_interval_days"`
	Note                 string          `json:"note"`
}

// RescheduleAccount replaces the installment schedule of an account that
// has not collected anything yet. The old installments are cancelled, not
// deleted, so the change stays auditable. Accounts with payments on any
// installment refuse the operation: the operator has to cancel the unpaid
// installments explicitly instead.
func (svc *AgencyService) RescheduleAccount(ctx context.Context, accountID int64, p RescheduleAccountParams) (*models.RunningAccount, error) {
	if !p.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", ErrInvalidAmount)
	}
	amounts, err := money.SplitEqually(p.TotalAmount, p.DownPayment, p.InstallmentCount)
	if err != nil {
		return nil, err
	}
	interval := p.ScheduleIntervalDays
	if interval < 0 {
		return nil, fmt.Errorf("%w: schedule interval must not be negative, got %d days", ErrConfiguration, interval)
	}
	if interval == 0 {
		interval = svc.Config.ScheduleIntervalDays
	}

	var account *models.RunningAccount
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		account = new(models.RunningAccount)
		err := tx.NewSelect().Model(account).Where("running_account.id = ?", accountID).For("UPDATE").Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		if account.Status == common.AccountStatusCancelled {
			return fmt.Errorf("%w: account %d is cancelled", ErrConfiguration, accountID)
		}

		collected, err := tx.NewSelect().Model((*models.Installment)(nil)).
			Where("account_id = ? AND paid_amount > 0 AND status != ?", accountID, common.InstallmentStatusCancelled).
			Count(ctx)
		if err != nil {
			return err
		}
		if collected > 0 {
			return fmt.Errorf("%w: account %d has %d installment(s) with payments, cancel them explicitly before rescheduling", ErrConfiguration, accountID, collected)
		}

		_, err = tx.NewUpdate().Model((*models.Installment)(nil)).
			Set("status = ?", common.InstallmentStatusCancelled).
			Set("updated_at = ?", time.Now()).
			Where("account_id = ? AND status != ?", accountID, common.InstallmentStatusCancelled).
			Exec(ctx)
		if err != nil {
			return err
		}

		maxSequence := 0
		err = tx.NewSelect().Model((*models.Installment)(nil)).
			ColumnExpr("COALESCE(MAX(sequence), 0)").
			Where("account_id = ?", accountID).
			Scan(ctx, &maxSequence)
		if err != nil {
			return err
		}

		for i, amount := range amounts {
			installment := models.Installment{
				AccountID: accountID,
				Sequence:  maxSequence + i + 1,
				Amount:    amount,
				DueDate:   dueDateFor(p.FirstDueDate, interval, i),
				Status:    common.InstallmentStatusPending,
			}
			if _, err := tx.NewInsert().Model(&installment).Exec(ctx); err != nil {
				return err
			}
		}

		account.TotalAmount = p.TotalAmount
		account.DownPayment = p.DownPayment
		account.InstallmentCount = p.InstallmentCount
		account.RescheduledAt = bun.NullTime{Time: time.Now()}
		if p.Note != "" {
			account.Notes = p.Note
		}
		_, err = tx.NewUpdate().Model(account).
			Column("total_amount", "down_payment", "installment_count", "rescheduled_at", "notes", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		account, err = recomputeAccount(ctx, tx, accountID, time.Now())
		return err
	})
	if err != nil {
		return nil, translateDBError(err)
	}
	svc.Logger.Infof("Rescheduled account %d: total %s, %d installments", accountID, p.TotalAmount, p.InstallmentCount)
	return account, nil
}
