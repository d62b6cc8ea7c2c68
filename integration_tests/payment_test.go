package integration_tests

import (
	"context"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PaymentTestSuite struct {
	TestSuite
	service *service.AgencyService
}

func (suite *PaymentTestSuite) SetupSuite() {
	svc, err := backofficeTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
}

func (suite *PaymentTestSuite) TearDownTest() {
	clearBillingTables(suite.service)
}

func (suite *PaymentTestSuite) TestFullPayment() {
	account, err := openTestAccount(suite.service, "31123456")
	assert.NoError(suite.T(), err)

	payment, err := suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), payment.Amount.Equal(dec("2000")))
	assert.Greater(suite.T(), payment.ReceiptNumber, int64(0))
	assert.NotEmpty(suite.T(), payment.ReceiptCode)

	updated, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.PendingBalance.Equal(dec("8000")))
	assert.Equal(suite.T(), common.AccountStatusInProgress, updated.Status)
	assert.Equal(suite.T(), common.InstallmentStatusFullyPaid, updated.Installments[0].Status)
	assert.False(suite.T(), updated.Installments[0].PaidDate.Time.IsZero())
	assert.Equal(suite.T(), common.PaymentMethodCash, updated.Installments[0].PaymentMethod)
}

func (suite *PaymentTestSuite) TestPartialPayment() {
	account, err := openTestAccount(suite.service, "31123457")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[1].ID,
		Amount:        dec("800"),
		Method:        common.PaymentMethodTransfer,
	})
	assert.NoError(suite.T(), err)

	updated, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.InstallmentStatusPartiallyPaid, updated.Installments[1].Status)
	assert.True(suite.T(), updated.Installments[1].PaidAmount.Equal(dec("800")))
	assert.True(suite.T(), updated.PendingBalance.Equal(dec("9200")))
}

func (suite *PaymentTestSuite) TestOverpaymentRefused() {
	account, err := openTestAccount(suite.service, "31123458")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000.01"),
		Method:        common.PaymentMethodCash,
	})
	assert.ErrorIs(suite.T(), err, service.ErrOverpayment)

	// nothing was written
	updated, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.PendingBalance.Equal(dec("10000")))
	assert.Equal(suite.T(), common.InstallmentStatusPending, updated.Installments[0].Status)
}

func (suite *PaymentTestSuite) TestAlreadySettled() {
	account, err := openTestAccount(suite.service, "31123459")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.ErrorIs(suite.T(), err, service.ErrAlreadySettled)
}

func (suite *PaymentTestSuite) TestInvalidPaymentInputs() {
	account, err := openTestAccount(suite.service, "31123460")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("0"),
		Method:        common.PaymentMethodCash,
	})
	assert.ErrorIs(suite.T(), err, service.ErrInvalidAmount)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("-100"),
		Method:        common.PaymentMethodCash,
	})
	assert.ErrorIs(suite.T(), err, service.ErrInvalidAmount)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        "barter",
	})
	assert.ErrorIs(suite.T(), err, service.ErrInvalidPaymentMethod)
}

func (suite *PaymentTestSuite) TestReceiptNumbersMonotonic() {
	account, err := openTestAccount(suite.service, "31123461")
	assert.NoError(suite.T(), err)

	var last int64
	for _, installment := range account.Installments[:3] {
		payment, err := suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
			InstallmentID: installment.ID,
			Amount:        dec("2000"),
			Method:        common.PaymentMethodCash,
		})
		assert.NoError(suite.T(), err)
		assert.Greater(suite.T(), payment.ReceiptNumber, last)
		last = payment.ReceiptNumber
	}

	payments, err := suite.service.PaymentsForAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), payments, 3)

	found, err := suite.service.FindPaymentByReceiptNumber(context.Background(), last)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), account.ID, found.AccountID)
}

// Two concurrent settlements of the same installment: exactly one wins.
func (suite *PaymentTestSuite) TestConcurrentDoubleSettlement() {
	account, err := openTestAccount(suite.service, "31123462")
	assert.NoError(suite.T(), err)
	installmentID := account.Installments[0].ID

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
				InstallmentID: installmentID,
				Amount:        dec("2000"),
				Method:        common.PaymentMethodCash,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		// the loser sees either the post-commit state or a retryable
		// serialization failure, never a second settlement
		settled := errors.Is(err, service.ErrAlreadySettled)
		conflict := errors.Is(err, service.ErrConcurrencyConflict)
		assert.True(suite.T(), settled || conflict, "unexpected error: %v", err)
	}
	assert.Equal(suite.T(), 1, succeeded)

	payments, err := suite.service.PaymentsForAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), payments, 1)

	updated, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Installments[0].PaidAmount.Equal(dec("2000")))
}

func (suite *PaymentTestSuite) TestPayAllInstallmentsSettlesAccount() {
	account, err := openTestAccount(suite.service, "31123463")
	assert.NoError(suite.T(), err)

	for _, installment := range account.Installments {
		_, err := suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
			InstallmentID: installment.ID,
			Amount:        dec("2000"),
			Method:        common.PaymentMethodDeposit,
		})
		assert.NoError(suite.T(), err)
	}

	updated, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated.PendingBalance.IsZero())
	assert.Equal(suite.T(), common.AccountStatusPaid, updated.Status)
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentTestSuite))
}
