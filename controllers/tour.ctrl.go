package controllers

import (
	"net/http"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// TourController : Tour controller struct
type TourController struct {
	svc *service.AgencyService
}

func NewTourController(svc *service.AgencyService) *TourController {
	return &TourController{svc: svc}
}

func (controller *TourController) CreateTour(c echo.Context) error {
	var tour models.Tour

	if err := c.Bind(&tour); err != nil {
		c.Logger().Errorf("Failed to load create tour request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&tour); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	created, err := controller.svc.CreateTour(c.Request().Context(), &tour)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, created)
}

func (controller *TourController) ListTours(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	tours, err := controller.svc.ListTours(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tours)
}
