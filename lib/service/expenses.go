package service

import (
	"context"
	"fmt"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/money"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

func (svc *AgencyService) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if expense.Description == "" {
		return nil, fmt.Errorf("%w: expense description is required", ErrConfiguration)
	}
	if !expense.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", ErrInvalidAmount)
	}
	if err := money.CheckCurrency(expense.Currency); err != nil {
		return nil, err
	}
	if expense.Category == "" {
		expense.Category = models.ExpenseCategoryOther
	}
	if !models.ValidExpenseCategory(expense.Category) {
		return nil, fmt.Errorf("%w: unknown expense category %q", ErrConfiguration, expense.Category)
	}
	if expense.ReservationID != 0 {
		if _, err := svc.FindReservation(ctx, expense.ReservationID); err != nil {
			return nil, err
		}
	}
	expense.Status = expense.DeriveStatus(time.Now())
	if _, err := svc.DB.NewInsert().Model(expense).Exec(ctx); err != nil {
		return nil, translateDBError(err)
	}
	return expense, nil
}

func (svc *AgencyService) FindExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expense := new(models.Expense)
	err := svc.DB.NewSelect().Model(expense).
		Where("expense.id = ?", expenseID).
		Where("expense.deleted_at IS NULL").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return expense, nil
}

// MarkExpensePaid records the payment facts and re-derives the status.
func (svc *AgencyService) MarkExpensePaid(ctx context.Context, expenseID int64, paidDate time.Time, method string) (*models.Expense, error) {
	if !common.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	expense, err := svc.FindExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.Status == common.ExpenseStatusCancelled {
		return nil, fmt.Errorf("%w: expense %d is cancelled", ErrConfiguration, expenseID)
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}
	expense.PaidDate = bun.NullTime{Time: paidDate}
	expense.PaymentMethod = method
	expense.Status = expense.DeriveStatus(time.Now())
	_, err = svc.DB.NewUpdate().Model(expense).
		Column("paid_date", "payment_method", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return expense, nil
}

func (svc *AgencyService) CancelExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expense, err := svc.FindExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Status = common.ExpenseStatusCancelled
	_, err = svc.DB.NewUpdate().Model(expense).Column("status", "updated_at").WherePK().Exec(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return expense, nil
}

type ExpenseFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   string
	Category string
}

func (svc *AgencyService) ListExpenses(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error) {
	expenses := []models.Expense{}
	q := svc.DB.NewSelect().Model(&expenses).Where("expense.deleted_at IS NULL")
	if filter.DateFrom != nil {
		q = q.Where("due_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("due_date <= ?", *filter.DateTo)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	err := q.Order("due_date ASC").Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return expenses, nil
}

// ExpenseTotalsByStatus aggregates expense amounts per status in the fixed
// enum order, sharing the report filter conventions.
func (svc *AgencyService) ExpenseTotalsByStatus(ctx context.Context, filter ExpenseFilter) (map[string]decimal.Decimal, error) {
	expenses, err := svc.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	totals := map[string]decimal.Decimal{
		common.ExpenseStatusPending:   decimal.Zero,
		common.ExpenseStatusPaid:      decimal.Zero,
		common.ExpenseStatusOverdue:   decimal.Zero,
		common.ExpenseStatusCancelled: decimal.Zero,
	}
	for _, e := range expenses {
		status := e.DeriveStatus(now)
		totals[status] = totals[status].Add(e.Amount)
	}
	return totals, nil
}
