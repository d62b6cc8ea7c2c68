package service

import (
	"testing"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(nil, nil, ReportFilter{}, time.Now(), 10)

	assert.Equal(t, 0, report.AccountsCount)
	assert.True(t, report.TotalAmount.IsZero())
	assert.True(t, report.PendingBalance.IsZero())
	assert.True(t, report.PaymentsAmount.IsZero())
	assert.True(t, report.PercentagePaid.IsZero())
	assert.Empty(t, report.TopDebtors)

	// grouped counts come back zeroed but in the fixed enum order
	assert.Len(t, report.AccountsByStatus, len(common.AccountStatuses))
	for idx, status := range common.AccountStatuses {
		assert.Equal(t, status, report.AccountsByStatus[idx].Status)
		assert.Equal(t, 0, report.AccountsByStatus[idx].Count)
	}
	assert.Len(t, report.InstallmentsByStatus, len(common.InstallmentStatuses))
	for idx, status := range common.InstallmentStatuses {
		assert.Equal(t, status, report.InstallmentsByStatus[idx].Status)
	}
}

func TestBuildReportKPIs(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)

	accounts := []models.RunningAccount{
		{
			ID:          1,
			ClientID:    7,
			Client:      &models.Client{ID: 7, FullName: "Ana Suarez"},
			Status:      common.AccountStatusInProgress,
			TotalAmount: dec("12000"),
			DownPayment: dec("2000"),
			Installments: []models.Installment{
				installment("2000", "2000", future, ""),
				installment("2000", "800", future, ""),
				installment("2000", "0", future, ""),
				installment("2000", "0", future, ""),
				installment("2000", "0", future, ""),
			},
		},
	}
	payments := []models.Payment{
		{AccountID: 1, Amount: dec("2000")},
		{AccountID: 1, Amount: dec("800")},
	}

	report := BuildReport(accounts, payments, ReportFilter{}, now, 10)

	assert.Equal(t, 1, report.AccountsCount)
	assert.True(t, report.TotalAmount.Equal(dec("12000")))
	assert.True(t, report.PendingBalance.Equal(dec("7200")))
	assert.True(t, report.PaymentsAmount.Equal(dec("2800")))
	// 2800 * 100 / 12000 rounded to two places
	assert.True(t, report.PercentagePaid.Equal(dec("23.33")), "got %s", report.PercentagePaid)

	counts := map[string]int{}
	for _, sc := range report.InstallmentsByStatus {
		counts[sc.Status] = sc.Count
	}
	assert.Equal(t, 1, counts[common.InstallmentStatusFullyPaid])
	assert.Equal(t, 1, counts[common.InstallmentStatusPartiallyPaid])
	assert.Equal(t, 3, counts[common.InstallmentStatusPending])

	accountCounts := map[string]int{}
	for _, sc := range report.AccountsByStatus {
		accountCounts[sc.Status] = sc.Count
	}
	assert.Equal(t, 1, accountCounts[common.AccountStatusInProgress])

	assert.Len(t, report.TopDebtors, 1)
	assert.Equal(t, "Ana Suarez", report.TopDebtors[0].ClientName)
	assert.True(t, report.TopDebtors[0].PendingBalance.Equal(dec("7200")))
}

func TestBuildReportTopDebtorsOrdering(t *testing.T) {
	now := time.Now()
	future := now.AddDate(0, 1, 0)

	account := func(id, clientID int64, total string) models.RunningAccount {
		return models.RunningAccount{
			ID:          id,
			ClientID:    clientID,
			Status:      common.AccountStatusPending,
			TotalAmount: dec(total),
			Installments: []models.Installment{
				installment(total, "0", future, ""),
			},
		}
	}

	accounts := []models.RunningAccount{
		account(1, 5, "3000"),
		account(2, 3, "5000"),
		account(3, 9, "5000"),
		account(4, 5, "1000"), // second account of the same client merges
	}

	report := BuildReport(accounts, nil, ReportFilter{}, now, 10)

	// descending by pending balance, ties broken by client id
	assert.Len(t, report.TopDebtors, 3)
	assert.Equal(t, int64(3), report.TopDebtors[0].ClientID)
	assert.Equal(t, int64(9), report.TopDebtors[1].ClientID)
	assert.Equal(t, int64(5), report.TopDebtors[2].ClientID)
	assert.Equal(t, 2, report.TopDebtors[2].AccountCount)
	assert.True(t, report.TopDebtors[2].PendingBalance.Equal(dec("4000")))

	// limit applies after sorting
	limited := BuildReport(accounts, nil, ReportFilter{}, now, 2)
	assert.Len(t, limited.TopDebtors, 2)
	assert.Equal(t, int64(3), limited.TopDebtors[0].ClientID)
}

func TestBuildReportOverdueClassification(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	accounts := []models.RunningAccount{
		{
			ID:          1,
			ClientID:    1,
			Status:      common.AccountStatusPending,
			TotalAmount: dec("4000"),
			Installments: []models.Installment{
				installment("2000", "0", past, ""),
				installment("2000", "0", future, ""),
			},
		},
	}

	report := BuildReport(accounts, nil, ReportFilter{}, now, 10)

	counts := map[string]int{}
	for _, sc := range report.InstallmentsByStatus {
		counts[sc.Status] = sc.Count
	}
	// the stored status is still pending but past-due reads as overdue
	assert.Equal(t, 1, counts[common.InstallmentStatusOverdue])
	assert.Equal(t, 1, counts[common.InstallmentStatusPending])

	accountCounts := map[string]int{}
	for _, sc := range report.AccountsByStatus {
		accountCounts[sc.Status] = sc.Count
	}
	assert.Equal(t, 1, accountCounts[common.AccountStatusOverdue])
}

func TestBuildReportInstallmentStatusFilter(t *testing.T) {
	now := time.Now()
	future := now.AddDate(0, 1, 0)

	accounts := []models.RunningAccount{
		{
			ID:          1,
			ClientID:    1,
			Status:      common.AccountStatusInProgress,
			TotalAmount: dec("4000"),
			Installments: []models.Installment{
				installment("2000", "2000", future, ""),
				installment("2000", "0", future, ""),
			},
		},
	}

	report := BuildReport(accounts, nil, ReportFilter{InstallmentStatus: common.InstallmentStatusPending}, now, 10)

	counts := map[string]int{}
	for _, sc := range report.InstallmentsByStatus {
		counts[sc.Status] = sc.Count
	}
	assert.Equal(t, 1, counts[common.InstallmentStatusPending])
	assert.Equal(t, 0, counts[common.InstallmentStatusFullyPaid])
}
