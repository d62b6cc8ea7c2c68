package service

import (
	"github.com/labstack/gommon/random"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type AgencyService struct {
	Config        *Config
	DB            *bun.DB
	Logger        *lecho.Logger
	PaymentPubSub *Pubsub
}
