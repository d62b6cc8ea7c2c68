package controllers

import (
	"net/http"
	"strconv"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountController : RunningAccount controller struct
type AccountController struct {
	svc *service.AgencyService
}

func NewAccountController(svc *service.AgencyService) *AccountController {
	return &AccountController{svc: svc}
}

// OpenAccount opens the running account for the reservation in the path.
// The reservation id in the body, if any, is ignored.
func (controller *AccountController) OpenAccount(c echo.Context) error {
	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body service.OpenAccountParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load open account request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	body.ReservationID = reservationID
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.OpenAccount(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) GetAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	account, err := controller.svc.FindAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) GetAccountByReservation(c echo.Context) error {
	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	account, err := controller.svc.FindAccountByReservation(c.Request().Context(), reservationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) Recompute(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	account, err := controller.svc.RecomputeAccountStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) CancelAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	account, err := controller.svc.CancelAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) RescheduleAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body service.RescheduleAccountParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load reschedule request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.RescheduleAccount(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

func (controller *AccountController) CancelInstallment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	installment, err := controller.svc.CancelInstallment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, installment)
}
