package controllers

import (
	"net/http"
	"strconv"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// ClientController : Client controller struct
type ClientController struct {
	svc *service.AgencyService
}

func NewClientController(svc *service.AgencyService) *ClientController {
	return &ClientController{svc: svc}
}

type CreateClientRequestBody struct {
	FullName       string `json:"full_name" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

func (controller *ClientController) CreateClient(c echo.Context) error {
	var body CreateClientRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create client request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	client, err := controller.svc.CreateClient(c.Request().Context(), &models.Client{
		FullName:       body.FullName,
		DocumentNumber: body.DocumentNumber,
		Email:          body.Email,
		Phone:          body.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, client)
}

func (controller *ClientController) GetClient(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	client, err := controller.svc.FindClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

func (controller *ClientController) ListClients(c echo.Context) error {
	clients, err := controller.svc.ListClients(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}
