package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/altamira-viajes/backoffice/lib/security"
	"github.com/altamira-viajes/backoffice/lib/tokens"
	"golang.org/x/crypto/bcrypt"
)

func (svc *AgencyService) CreateUser(ctx context.Context, login, password, fullName string) (user *models.User, err error) {

	user = &models.User{FullName: fullName}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		user.Login = randStringFromBytes(20, alphaNumBytes)
	}
	if password == "" {
		password = randStringFromBytes(20, alphaNumBytes)
	}

	// we only store the hashed password but return the initial plain text
	// password in the HTTP response
	user.Password = security.HashPassword(password)

	if _, err := svc.DB.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: login %q is taken", ErrConfiguration, login)
		}
		return nil, translateDBError(err)
	}

	// return the actual password in the response, not the hashed one
	user.Password = password
	return user, nil
}

func (svc *AgencyService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, translateDBError(err)
	}
	return &user, nil
}

func (svc *AgencyService) GenerateToken(ctx context.Context, login, password string) (accessToken, refreshToken string, err error) {
	var user models.User

	if login == "" || password == "" {
		return "", "", fmt.Errorf("login and password are required")
	}
	if err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Scan(ctx); err != nil {
		return "", "", fmt.Errorf("bad auth")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", fmt.Errorf("bad auth")
	}
	if user.Deactivated {
		return "", "", fmt.Errorf("bad auth")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func randStringFromBytes(n int, pool string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = pool[rand.Intn(len(pool))]
	}
	return string(b)
}
