package controllers

import (
	"net/http"
	"strconv"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// PaymentController : Payment controller struct
type PaymentController struct {
	svc *service.AgencyService
}

func NewPaymentController(svc *service.AgencyService) *PaymentController {
	return &PaymentController{svc: svc}
}

// ApplyPayment settles the installment in the path. The recording user is
// taken from the access token, never from the body.
func (controller *PaymentController) ApplyPayment(c echo.Context) error {
	installmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body service.ApplyPaymentParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load payment request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	body.InstallmentID = installmentID
	if userID, ok := c.Get("UserID").(int64); ok {
		body.RecordedByID = userID
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.ApplyPayment(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (controller *PaymentController) ListAccountPayments(c echo.Context) error {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	payments, err := controller.svc.PaymentsForAccount(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

type UpdatePaymentMetadataRequestBody struct {
	Metadata map[string]interface{} `json:"metadata" validate:"required"`
}

// UpdateMetadata is the only mutation a payment admits.
func (controller *PaymentController) UpdateMetadata(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body UpdatePaymentMetadataRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.UpdatePaymentMetadata(c.Request().Context(), id, body.Metadata)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (controller *PaymentController) GetByReceiptNumber(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	payment, err := controller.svc.FindPaymentByReceiptNumber(c.Request().Context(), number)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
