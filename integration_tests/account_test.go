package integration_tests

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	TestSuite
	service *service.AgencyService
}

func (suite *AccountTestSuite) SetupSuite() {
	svc, err := backofficeTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
}

func (suite *AccountTestSuite) TearDownTest() {
	clearBillingTables(suite.service)
}

func (suite *AccountTestSuite) TestOpenAccountSchedule() {
	account, err := openTestAccount(suite.service, "30123456")
	assert.NoError(suite.T(), err)

	assert.True(suite.T(), account.TotalAmount.Equal(dec("12000")))
	assert.True(suite.T(), account.DownPayment.Equal(dec("2000")))
	assert.True(suite.T(), account.PendingBalance.Equal(dec("10000")))
	assert.Equal(suite.T(), common.AccountStatusPending, account.Status)
	assert.Len(suite.T(), account.Installments, 5)
	for idx, installment := range account.Installments {
		assert.Equal(suite.T(), idx+1, installment.Sequence)
		assert.True(suite.T(), installment.Amount.Equal(dec("2000")))
		assert.Equal(suite.T(), common.InstallmentStatusPending, installment.Status)
	}
	// monthly schedule, one month apart
	first := account.Installments[0].DueDate
	assert.Equal(suite.T(), first.AddDate(0, 1, 0), account.Installments[1].DueDate)
}

func (suite *AccountTestSuite) TestOpenAccountDuplicate() {
	account, err := openTestAccount(suite.service, "30123457")
	assert.NoError(suite.T(), err)

	_, err = suite.service.OpenAccount(context.Background(), service.OpenAccountParams{
		ReservationID:        account.ReservationID,
		ClientID:             account.ClientID,
		TotalAmount:          dec("5000"),
		InstallmentCount:     2,
		FirstDueDate:         time.Now().AddDate(0, 1, 0),
		ScheduleIntervalDays: 30,
	})
	assert.ErrorIs(suite.T(), err, service.ErrDuplicateAccount)
}

func (suite *AccountTestSuite) TestOpenAccountZeroInstallmentsWithRemainder() {
	client, err := createTestClient(suite.service, "Marta Lopez", "30123458")
	assert.NoError(suite.T(), err)
	reservation, err := createTestReservation(suite.service, client.ID, "12000")
	assert.NoError(suite.T(), err)

	// a remainder with no installments to carry it is a setup error
	_, err = suite.service.OpenAccount(context.Background(), service.OpenAccountParams{
		ReservationID:    reservation.ID,
		ClientID:         client.ID,
		TotalAmount:      dec("12000"),
		DownPayment:      dec("2000"),
		InstallmentCount: 0,
		FirstDueDate:     time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(suite.T(), err, service.ErrConfiguration)
}

func (suite *AccountTestSuite) TestOpenAccountDownPaymentCoversTotal() {
	client, err := createTestClient(suite.service, "Elena Ruiz", "30123471")
	assert.NoError(suite.T(), err)
	reservation, err := createTestReservation(suite.service, client.ID, "12000")
	assert.NoError(suite.T(), err)

	// nothing left to schedule, so every installment would come out zero
	_, err = suite.service.OpenAccount(context.Background(), service.OpenAccountParams{
		ReservationID:    reservation.ID,
		ClientID:         client.ID,
		TotalAmount:      dec("12000"),
		DownPayment:      dec("12000"),
		InstallmentCount: 2,
		FirstDueDate:     time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(suite.T(), err, service.ErrInvalidAmount)

	// rejected before anything was written
	_, err = suite.service.FindAccountByReservation(context.Background(), reservation.ID)
	assert.ErrorIs(suite.T(), err, service.ErrNotFound)
}

func (suite *AccountTestSuite) TestOpenAccountNegativeInterval() {
	client, err := createTestClient(suite.service, "Pedro Gimenez", "30123472")
	assert.NoError(suite.T(), err)
	reservation, err := createTestReservation(suite.service, client.ID, "12000")
	assert.NoError(suite.T(), err)

	_, err = suite.service.OpenAccount(context.Background(), service.OpenAccountParams{
		ReservationID:        reservation.ID,
		ClientID:             client.ID,
		TotalAmount:          dec("12000"),
		DownPayment:          dec("2000"),
		InstallmentCount:     5,
		FirstDueDate:         time.Now().AddDate(0, 1, 0),
		ScheduleIntervalDays: -7,
	})
	assert.ErrorIs(suite.T(), err, service.ErrConfiguration)
}

func (suite *AccountTestSuite) TestRescheduleDownPaymentCoversTotal() {
	account, err := openTestAccount(suite.service, "30123473")
	assert.NoError(suite.T(), err)

	_, err = suite.service.RescheduleAccount(context.Background(), account.ID, service.RescheduleAccountParams{
		TotalAmount:      dec("12000"),
		DownPayment:      dec("12000"),
		InstallmentCount: 3,
		FirstDueDate:     time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(suite.T(), err, service.ErrInvalidAmount)

	// the original schedule is untouched
	fetched, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), fetched.Installments, 5)
}

func (suite *AccountTestSuite) TestRecomputeIdempotent() {
	account, err := openTestAccount(suite.service, "30123470")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.NoError(suite.T(), err)

	first, err := suite.service.RecomputeAccountStatus(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	second, err := suite.service.RecomputeAccountStatus(context.Background(), account.ID)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), first.Status, second.Status)
	assert.True(suite.T(), first.PendingBalance.Equal(second.PendingBalance))
	assert.True(suite.T(), second.PendingBalance.Equal(dec("8000")))
}

func (suite *AccountTestSuite) TestCancelAccount() {
	account, err := openTestAccount(suite.service, "30123459")
	assert.NoError(suite.T(), err)

	cancelled, err := suite.service.CancelAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.AccountStatusCancelled, cancelled.Status)

	// cancelled sticks through a recompute
	recomputed, err := suite.service.RecomputeAccountStatus(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.AccountStatusCancelled, recomputed.Status)

	// payments against a cancelled account are refused
	fetched, err := suite.service.FindAccount(context.Background(), account.ID)
	assert.NoError(suite.T(), err)
	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: fetched.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.ErrorIs(suite.T(), err, service.ErrConfiguration)
}

func (suite *AccountTestSuite) TestRescheduleAccount() {
	account, err := openTestAccount(suite.service, "30123460")
	assert.NoError(suite.T(), err)

	rescheduled, err := suite.service.RescheduleAccount(context.Background(), account.ID, service.RescheduleAccountParams{
		TotalAmount:          dec("12000"),
		DownPayment:          dec("3000"),
		InstallmentCount:     3,
		FirstDueDate:         time.Now().AddDate(0, 2, 0),
		ScheduleIntervalDays: 30,
		Note:                 "client asked for fewer installments",
	})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), rescheduled.PendingBalance.Equal(dec("9000")))
	assert.True(suite.T(), rescheduled.RescheduledAt.Time.After(time.Time{}))

	active := 0
	cancelledCount := 0
	maxSequence := 0
	for _, installment := range rescheduled.Installments {
		if installment.Status == common.InstallmentStatusCancelled {
			cancelledCount++
			continue
		}
		active++
		if installment.Sequence > maxSequence {
			maxSequence = installment.Sequence
		}
		assert.True(suite.T(), installment.Amount.Equal(dec("3000")))
	}
	assert.Equal(suite.T(), 3, active)
	assert.Equal(suite.T(), 5, cancelledCount)
	// sequences continue past the cancelled schedule
	assert.Equal(suite.T(), 8, maxSequence)
}

func (suite *AccountTestSuite) TestRescheduleRefusedAfterCollection() {
	account, err := openTestAccount(suite.service, "30123461")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodTransfer,
	})
	assert.NoError(suite.T(), err)

	_, err = suite.service.RescheduleAccount(context.Background(), account.ID, service.RescheduleAccountParams{
		TotalAmount:      dec("12000"),
		InstallmentCount: 2,
		FirstDueDate:     time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(suite.T(), err, service.ErrConfiguration)
}

func (suite *AccountTestSuite) TestCancelInstallment() {
	account, err := openTestAccount(suite.service, "30123462")
	assert.NoError(suite.T(), err)

	cancelled, err := suite.service.CancelInstallment(context.Background(), account.Installments[4].ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.InstallmentStatusCancelled, cancelled.Status)

	// a paid installment cannot be cancelled
	_, err = suite.service.ApplyPayment(context.Background(), service.ApplyPaymentParams{
		InstallmentID: account.Installments[0].ID,
		Amount:        dec("2000"),
		Method:        common.PaymentMethodCash,
	})
	assert.NoError(suite.T(), err)
	_, err = suite.service.CancelInstallment(context.Background(), account.Installments[0].ID)
	assert.ErrorIs(suite.T(), err, service.ErrConfiguration)
}

func TestAccountSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}
