package controllers

import (
	"net/http"
	"time"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// ReportController : Financial reporting controller struct
type ReportController struct {
	svc *service.AgencyService
}

func NewReportController(svc *service.AgencyService) *ReportController {
	return &ReportController{svc: svc}
}

// parseDateParam accepts YYYY-MM-DD query params, empty means unset.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (controller *ReportController) FinancialReport(c echo.Context) error {
	dateFrom, err := parseDateParam(c.QueryParam("date_from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	dateTo, err := parseDateParam(c.QueryParam("date_to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	filter := service.ReportFilter{
		DateFrom:          dateFrom,
		DateTo:            dateTo,
		AccountStatus:     c.QueryParam("account_status"),
		InstallmentStatus: c.QueryParam("installment_status"),
		OnlyDebtors:       c.QueryParam("only_debtors") == "true",
	}

	report, err := controller.svc.ComputeReport(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (controller *ReportController) ExpenseReport(c echo.Context) error {
	dateFrom, err := parseDateParam(c.QueryParam("date_from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	dateTo, err := parseDateParam(c.QueryParam("date_to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	filter := service.ExpenseFilter{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}

	expenses, err := controller.svc.ListExpenses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	totals, err := controller.svc.ExpenseTotalsByStatus(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"expenses": expenses,
		"totals":   totals,
	})
}
