package responses

import (
	"errors"
	"net/http"

	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	Field          string `json:"field,omitempty"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           "internal_error",
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           "bad_arguments",
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var InvalidAmountError = ErrorResponse{
	Error:          true,
	Code:           "invalid_amount",
	Message:        "invalid amount",
	Field:          "amount",
	HttpStatusCode: 400,
}

var InvalidCurrencyError = ErrorResponse{
	Error:          true,
	Code:           "invalid_currency",
	Message:        "currency must be one of ARS, USD",
	Field:          "currency",
	HttpStatusCode: 400,
}

var DuplicateAccountError = ErrorResponse{
	Error:          true,
	Code:           "duplicate_account",
	Message:        "a running account already exists for this reservation",
	Field:          "reservation_id",
	HttpStatusCode: 409,
}

var ConfigurationError = ErrorResponse{
	Error:          true,
	Code:           "configuration_error",
	Message:        "the requested configuration is not allowed",
	HttpStatusCode: 422,
}

var OverpaymentError = ErrorResponse{
	Error:          true,
	Code:           "overpayment",
	Message:        "payment exceeds the installment amount outstanding",
	Field:          "amount",
	HttpStatusCode: 422,
}

var InvalidPaymentMethodError = ErrorResponse{
	Error:          true,
	Code:           "invalid_payment_method",
	Message:        "unrecognized payment method",
	Field:          "method",
	HttpStatusCode: 400,
}

var AlreadySettledError = ErrorResponse{
	Error:          true,
	Code:           "already_settled",
	Message:        "the installment is already fully paid",
	HttpStatusCode: 409,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           "not_found",
	Message:        "resource not found",
	HttpStatusCode: 404,
}

var ConcurrencyConflictError = ErrorResponse{
	Error:          true,
	Code:           "concurrency_conflict",
	Message:        "the operation conflicted with a concurrent update, retry with backoff",
	HttpStatusCode: 409,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           "bad_auth",
	Message:        "bad auth",
	HttpStatusCode: 401,
}

// Map translates a service error into its structured response. The second
// return is false when the error is no known kind and should be treated as
// a server error.
func Map(err error) (ErrorResponse, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return withMessage(InvalidAmountError, err), true
	case errors.Is(err, service.ErrInvalidCurrency):
		return withMessage(InvalidCurrencyError, err), true
	case errors.Is(err, service.ErrDuplicateAccount):
		return withMessage(DuplicateAccountError, err), true
	case errors.Is(err, service.ErrConfiguration):
		return withMessage(ConfigurationError, err), true
	case errors.Is(err, service.ErrOverpayment):
		return withMessage(OverpaymentError, err), true
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		return withMessage(InvalidPaymentMethodError, err), true
	case errors.Is(err, service.ErrAlreadySettled):
		return withMessage(AlreadySettledError, err), true
	case errors.Is(err, service.ErrNotFound):
		return NotFoundError, true
	case errors.Is(err, service.ErrConcurrencyConflict):
		return ConcurrencyConflictError, true
	}
	return GeneralServerError, false
}

func withMessage(resp ErrorResponse, err error) ErrorResponse {
	resp.Message = err.Error()
	return resp
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if resp, ok := Map(err); ok {
		c.JSON(resp.HttpStatusCode, &resp)
		return
	}

	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}
