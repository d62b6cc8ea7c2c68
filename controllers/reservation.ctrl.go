package controllers

import (
	"net/http"
	"strconv"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// ReservationController : Reservation controller struct
type ReservationController struct {
	svc *service.AgencyService
}

func NewReservationController(svc *service.AgencyService) *ReservationController {
	return &ReservationController{svc: svc}
}

func (controller *ReservationController) CreateReservation(c echo.Context) error {
	var body service.CreateReservationParams

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create reservation request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	reservation, err := controller.svc.CreateReservation(c.Request().Context(), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

func (controller *ReservationController) GetReservation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	reservation, err := controller.svc.FindReservation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

func (controller *ReservationController) ListReservations(c echo.Context) error {
	reservations, err := controller.svc.ListReservations(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservations)
}

type UpdateReservationStatusRequestBody struct {
	Status string `json:"status" validate:"required"`
}

func (controller *ReservationController) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body UpdateReservationStatusRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	reservation, err := controller.svc.UpdateReservationStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

func (controller *ReservationController) DeleteReservation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.DeleteReservation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type AttachClientRequestBody struct {
	ClientID int64  `json:"client_id" validate:"required"`
	Role     string `json:"role"`
}

func (controller *ReservationController) AttachClient(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body AttachClientRequestBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	link, err := controller.svc.AttachClient(c.Request().Context(), id, body.ClientID, body.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}

func (controller *ReservationController) AttachDocument(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	var body service.AttachDocumentParams
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	doc, err := controller.svc.AttachDocument(c.Request().Context(), id, body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doc)
}
