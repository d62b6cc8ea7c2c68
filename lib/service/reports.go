package service

import (
	"context"
	"sort"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type ReportFilter struct {
	DateFrom          *time.Time `json:"date_from,omitempty"`
	DateTo            *time.Time `json:"date_to,omitempty"`
	AccountStatus     string     `json:"account_status,omitempty"`
	InstallmentStatus string     `json:"installment_status,omitempty"`
	OnlyDebtors       bool       `json:"only_debtors,omitempty"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DebtorRow struct {
	ClientID       int64           `json:"client_id"`
	ClientName     string          `json:"client_name"`
	AccountCount   int             `json:"account_count"`
	PendingBalance decimal.Decimal `json:"pending_balance"`
}

type Report struct {
	AccountsCount        int             `json:"accounts_count"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	PendingBalance       decimal.Decimal `json:"pending_balance"`
	PaymentsAmount       decimal.Decimal `json:"payments_amount"`
	PercentagePaid       decimal.Decimal `json:"percentage_paid"`
	InstallmentsByStatus []StatusCount   `json:"installments_by_status"`
	AccountsByStatus     []StatusCount   `json:"accounts_by_status"`
	TopDebtors           []DebtorRow     `json:"top_debtors"`
}

// ComputeReport aggregates the financial KPIs over the filtered accounts.
// Read-only; an empty result set yields all-zero KPIs, never an error.
func (svc *AgencyService) ComputeReport(ctx context.Context, filter ReportFilter) (*Report, error) {
	accounts := []models.RunningAccount{}
	q := svc.DB.NewSelect().Model(&accounts).
		Relation("Client").
		Relation("Installments", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("sequence ASC")
		})
	if filter.DateFrom != nil {
		q = q.Where("running_account.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("running_account.created_at <= ?", *filter.DateTo)
	}
	if filter.AccountStatus != "" {
		q = q.Where("running_account.status = ?", filter.AccountStatus)
	}
	if filter.OnlyDebtors {
		q = q.Where("running_account.pending_balance > 0")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, translateDBError(err)
	}

	payments := []models.Payment{}
	if len(accounts) > 0 {
		accountIDs := make([]int64, len(accounts))
		for i, a := range accounts {
			accountIDs[i] = a.ID
		}
		pq := svc.DB.NewSelect().Model(&payments).Where("account_id IN (?)", bun.In(accountIDs))
		if filter.DateFrom != nil {
			pq = pq.Where("payment_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			pq = pq.Where("payment_date <= ?", *filter.DateTo)
		}
		if err := pq.Scan(ctx); err != nil {
			return nil, translateDBError(err)
		}
	}

	return BuildReport(accounts, payments, filter, time.Now(), svc.Config.TopDebtorsLimit), nil
}

// BuildReport is the pure aggregation over already-fetched rows. Grouped
// counts follow the fixed enum order so the output is reproducible.
func BuildReport(accounts []models.RunningAccount, payments []models.Payment, filter ReportFilter, now time.Time, topN int) *Report {
	report := &Report{
		AccountsCount:  len(accounts),
		TotalAmount:    decimal.Zero,
		PendingBalance: decimal.Zero,
		PaymentsAmount: decimal.Zero,
		PercentagePaid: decimal.Zero,
	}

	installmentCounts := map[string]int{}
	accountCounts := map[string]int{}
	debtors := map[int64]*DebtorRow{}

	for i := range accounts {
		account := &accounts[i]
		report.TotalAmount = report.TotalAmount.Add(account.TotalAmount)

		pending := PendingBalanceFor(account, account.Installments)
		report.PendingBalance = report.PendingBalance.Add(pending)

		accountCounts[DeriveAccountStatus(account, account.Installments, pending, now)]++

		for _, installment := range account.Installments {
			status := installment.EffectiveStatus(now)
			if filter.InstallmentStatus != "" && status != filter.InstallmentStatus {
				continue
			}
			installmentCounts[status]++
		}

		if pending.IsPositive() {
			row, ok := debtors[account.ClientID]
			if !ok {
				row = &DebtorRow{ClientID: account.ClientID, PendingBalance: decimal.Zero}
				if account.Client != nil {
					row.ClientName = account.Client.FullName
				}
				debtors[account.ClientID] = row
			}
			row.AccountCount++
			row.PendingBalance = row.PendingBalance.Add(pending)
		}
	}

	for _, payment := range payments {
		report.PaymentsAmount = report.PaymentsAmount.Add(payment.Amount)
	}

	if report.TotalAmount.IsPositive() {
		report.PercentagePaid = report.PaymentsAmount.
			Mul(decimal.NewFromInt(100)).
			Div(report.TotalAmount).
			Round(2)
	}

	report.InstallmentsByStatus = make([]StatusCount, 0, len(common.InstallmentStatuses))
	for _, status := range common.InstallmentStatuses {
		report.InstallmentsByStatus = append(report.InstallmentsByStatus, StatusCount{Status: status, Count: installmentCounts[status]})
	}
	report.AccountsByStatus = make([]StatusCount, 0, len(common.AccountStatuses))
	for _, status := range common.AccountStatuses {
		report.AccountsByStatus = append(report.AccountsByStatus, StatusCount{Status: status, Count: accountCounts[status]})
	}

	report.TopDebtors = make([]DebtorRow, 0, len(debtors))
	for _, row := range debtors {
		report.TopDebtors = append(report.TopDebtors, *row)
	}
	sort.Slice(report.TopDebtors, func(i, j int) bool {
		a, b := report.TopDebtors[i], report.TopDebtors[j]
		if !a.PendingBalance.Equal(b.PendingBalance) {
			return a.PendingBalance.GreaterThan(b.PendingBalance)
		}
		return a.ClientID < b.ClientID
	})
	if topN > 0 && len(report.TopDebtors) > topN {
		report.TopDebtors = report.TopDebtors[:topN]
	}

	return report
}
