package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// ExpenseController : Expense controller struct
type ExpenseController struct {
	svc *service.AgencyService
}

func NewExpenseController(svc *service.AgencyService) *ExpenseController {
	return &ExpenseController{svc: svc}
}

func (controller *ExpenseController) CreateExpense(c echo.Context) error {
	var expense models.Expense

	if err := c.Bind(&expense); err != nil {
		c.Logger().Errorf("Failed to load create expense request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&expense); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	created, err := controller.svc.CreateExpense(c.Request().Context(), &expense)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (controller *ExpenseController) GetExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	expense, err := controller.svc.FindExpense(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

func (controller *ExpenseController) ListExpenses(c echo.Context) error {
	dateFrom, err := parseDateParam(c.QueryParam("date_from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	dateTo, err := parseDateParam(c.QueryParam("date_to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	expenses, err := controller.svc.ListExpenses(c.Request().Context(), service.ExpenseFilter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenses)
}

type MarkExpensePaidRequestBody struct {
	PaidDate time.Time `json:"paid_date"`
	Method   string    `json:"method" validate:"required"`
}

func (controller *ExpenseController) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body MarkExpensePaidRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if body.PaidDate.IsZero() {
		body.PaidDate = time.Now()
	}

	expense, err := controller.svc.MarkExpensePaid(c.Request().Context(), id, body.PaidDate, body.Method)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

func (controller *ExpenseController) CancelExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	expense, err := controller.svc.CancelExpense(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}
