package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type ApplyPaymentParams struct {
	InstallmentID int64                  `json:"installment_id" validate:"required"`
	Amount        decimal.Decimal        `json:"amount"`
	Method        string                 `json:"method" validate:"required"`
	PaymentDate   time.Time              `json:"payment_date"`
	RecordedByID  int64                  `json:"recorded_by_id"`
	Metadata      map[string]interface{} `json:"metadata"`
	Notes         string                 `json:"notes"`
}

// ApplyPayment posts a payment against an installment. The installment row
// is locked for the duration of the transaction, the amount bounds are
// checked against the locked row, the receipt number is drawn from the
// global sequence and the owning account is recomputed, all inside one
// serializable transaction. Any failure rolls everything back: there is
// never a Payment row without the matching installment update.
func (svc *AgencyService) ApplyPayment(ctx context.Context, p ApplyPaymentParams) (*models.Payment, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidAmount)
	}
	if !common.ValidPaymentMethod(p.Method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, p.Method)
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}

	payment := new(models.Payment)
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx bun.Tx) error {
		installment := new(models.Installment)
		err := tx.NewSelect().Model(installment).
			Where("installment.id = ?", p.InstallmentID).
			For("UPDATE").
			Limit(1).
			Scan(ctx)
		if err != nil {
			return err
		}

		if installment.Status == common.InstallmentStatusCancelled {
			return fmt.Errorf("%w: installment %d is cancelled", ErrConfiguration, installment.ID)
		}
		if installment.PaidAmount.GreaterThanOrEqual(installment.Amount) {
			return fmt.Errorf("%w: installment %d", ErrAlreadySettled, installment.ID)
		}
		if installment.PaidAmount.Add(p.Amount).GreaterThan(installment.Amount) {
			return fmt.Errorf("%w: %s paid + %s exceeds %s on installment %d",
				ErrOverpayment, installment.PaidAmount, p.Amount, installment.Amount, installment.ID)
		}

		account := new(models.RunningAccount)
		err = tx.NewSelect().Model(account).Where("running_account.id = ?", installment.AccountID).For("UPDATE").Limit(1).Scan(ctx)
		if err != nil {
			return err
		}
		if account.Status == common.AccountStatusCancelled {
			return fmt.Errorf("%w: account %d is cancelled", ErrConfiguration, account.ID)
		}

		// the sequence is the single source of receipt numbers, a rolled
		// back transaction burns its number instead of reusing it
		var receiptNumber int64
		if err := tx.QueryRowContext(ctx, "SELECT nextval('payment_receipt_seq')").Scan(&receiptNumber); err != nil {
			return err
		}

		installment.PaidAmount = installment.PaidAmount.Add(p.Amount)
		installment.PaidDate = bun.NullTime{Time: p.PaymentDate}
		installment.PaymentMethod = p.Method
		installment.Status = installment.DeriveStatus()
		if p.Notes != "" {
			installment.Notes = p.Notes
		}
		_, err = tx.NewUpdate().Model(installment).
			Column("paid_amount", "paid_date", "payment_method", "status", "notes", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		*payment = models.Payment{
			ReceiptNumber: receiptNumber,
			ReceiptCode:   makeReceiptCode(receiptNumber),
			AccountID:     account.ID,
			InstallmentID: installment.ID,
			ClientID:      account.ClientID,
			RecordedByID:  p.RecordedByID,
			Amount:        p.Amount,
			Method:        p.Method,
			PaymentDate:   p.PaymentDate,
			Metadata:      p.Metadata,
			Notes:         p.Notes,
		}
		if _, err := tx.NewInsert().Model(payment).Exec(ctx); err != nil {
			return err
		}

		_, err = recomputeAccount(ctx, tx, account.ID, time.Now())
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			// the 1:1 payment constraint: a concurrent transaction settled
			// this installment first
			return nil, fmt.Errorf("%w: installment %d", ErrAlreadySettled, p.InstallmentID)
		}
		return nil, translateDBError(err)
	}

	svc.Logger.Infof("Payment %s: %s %s on installment %d (receipt #%d)", payment.ReceiptCode, p.Amount, p.Method, p.InstallmentID, payment.ReceiptNumber)
	if svc.PaymentPubSub != nil {
		svc.PaymentPubSub.Publish(common.PaymentTopicPosted, *payment)
	}
	return payment, nil
}

func makeReceiptCode(receiptNumber int64) string {
	return fmt.Sprintf("RBO-%08d-%s", receiptNumber, random.String(4, random.Uppercase))
}

func (svc *AgencyService) FindPaymentByReceiptNumber(ctx context.Context, receiptNumber int64) (*models.Payment, error) {
	payment := new(models.Payment)
	err := svc.DB.NewSelect().Model(payment).
		Relation("Client").
		Where("payment.receipt_number = ?", receiptNumber).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return payment, nil
}

func (svc *AgencyService) PaymentsForAccount(ctx context.Context, accountID int64) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := svc.DB.NewSelect().Model(&payments).
		Where("account_id = ?", accountID).
		Order("receipt_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return payments, nil
}

// UpdatePaymentMetadata is the only mutation a payment admits. Amounts,
// dates and receipt identity stay frozen for audit.
func (svc *AgencyService) UpdatePaymentMetadata(ctx context.Context, paymentID int64, metadata map[string]interface{}) (*models.Payment, error) {
	payment := new(models.Payment)
	err := svc.DB.NewSelect().Model(payment).Where("payment.id = ?", paymentID).Limit(1).Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	payment.Metadata = metadata
	_, err = svc.DB.NewUpdate().Model(payment).Column("metadata").WherePK().Exec(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return payment, nil
}
