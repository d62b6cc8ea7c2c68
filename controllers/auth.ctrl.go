package controllers

import (
	"net/http"

	"github.com/altamira-viajes/backoffice/lib/responses"
	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/labstack/echo/v4"
)

// AuthController : Auth controller struct
type AuthController struct {
	svc *service.AgencyService
}

func NewAuthController(svc *service.AgencyService) *AuthController {
	return &AuthController{svc: svc}
}

type AuthRequestBody struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponseBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (controller *AuthController) Auth(c echo.Context) error {
	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, refreshToken, err := controller.svc.GenerateToken(c.Request().Context(), body.Login, body.Password)
	if err != nil {
		c.Logger().Errorf("Authentication error: %v", err)
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
