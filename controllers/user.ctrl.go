package controllers

import (
	"net/http"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// UserController : User controller struct
type UserController struct {
	svc *service.AgencyService
}

func NewUserController(svc *service.AgencyService) *UserController {
	return &UserController{svc: svc}
}

type CreateUserRequestBody struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type CreateUserResponseBody struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (controller *UserController) CreateUser(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.CreateUser(c.Request().Context(), body.Login, body.Password, body.FullName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &CreateUserResponseBody{
		ID:       user.ID,
		Login:    user.Login,
		Password: user.Password,
	})
}

// GetMe returns the operator behind the access token.
func (controller *UserController) GetMe(c echo.Context) error {
	userID, ok := c.Get("UserID").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}
	user, err := controller.svc.FindUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
