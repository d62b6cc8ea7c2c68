package models

import (
	"testing"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestInstallmentDeriveStatus(t *testing.T) {
	i := Installment{Amount: dec("2000")}

	assert.Equal(t, common.InstallmentStatusPending, i.DeriveStatus())

	i.PaidAmount = dec("800")
	assert.Equal(t, common.InstallmentStatusPartiallyPaid, i.DeriveStatus())

	i.PaidAmount = dec("2000")
	assert.Equal(t, common.InstallmentStatusFullyPaid, i.DeriveStatus())

	// cancelled sticks regardless of amounts
	i.Status = common.InstallmentStatusCancelled
	assert.Equal(t, common.InstallmentStatusCancelled, i.DeriveStatus())
}

func TestInstallmentEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// past due and unpaid reads as overdue without a stored transition
	i := Installment{Amount: dec("2000"), DueDate: now.AddDate(0, -1, 0)}
	assert.Equal(t, common.InstallmentStatusOverdue, i.EffectiveStatus(now))

	// partial payments past due are overdue too
	i.PaidAmount = dec("500")
	assert.Equal(t, common.InstallmentStatusOverdue, i.EffectiveStatus(now))

	// fully paid never reads as overdue
	i.PaidAmount = dec("2000")
	assert.Equal(t, common.InstallmentStatusFullyPaid, i.EffectiveStatus(now))

	// due today is not overdue yet
	dueToday := Installment{Amount: dec("2000"), DueDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, common.InstallmentStatusPending, dueToday.EffectiveStatus(now))

	// future due date keeps the stored status
	future := Installment{Amount: dec("2000"), DueDate: now.AddDate(0, 1, 0)}
	assert.Equal(t, common.InstallmentStatusPending, future.EffectiveStatus(now))
}

func TestInstallmentOutstanding(t *testing.T) {
	i := Installment{Amount: dec("2000"), PaidAmount: dec("800")}
	assert.True(t, i.Outstanding().Equal(dec("1200")))

	i.PaidAmount = dec("2000")
	assert.True(t, i.Outstanding().IsZero())

	// cancelled installments owe nothing
	i = Installment{Amount: dec("2000"), Status: common.InstallmentStatusCancelled}
	assert.True(t, i.Outstanding().IsZero())
}

func TestExpenseDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	e := Expense{Amount: dec("500"), DueDate: now.AddDate(0, 1, 0)}
	assert.Equal(t, common.ExpenseStatusPending, e.DeriveStatus(now))

	e.DueDate = now.AddDate(0, -1, 0)
	assert.Equal(t, common.ExpenseStatusOverdue, e.DeriveStatus(now))

	e.PaidDate = bun.NullTime{Time: now}
	assert.Equal(t, common.ExpenseStatusPaid, e.DeriveStatus(now))

	e.Status = common.ExpenseStatusCancelled
	assert.Equal(t, common.ExpenseStatusCancelled, e.DeriveStatus(now))
}
