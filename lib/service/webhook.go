package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/altamira-viajes/backoffice/common"
	"github.com/altamira-viajes/backoffice/db/models"
	"github.com/cenkalti/backoff/v4"
)

// StartWebhookSubscription relays every posted payment to the configured
// webhook URL, typically the agency's notification or bookkeeping system.
func (svc *AgencyService) StartWebhookSubscription(ctx context.Context, url string) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	payments := make(chan models.Payment)
	svc.PaymentPubSub.Subscribe(common.PaymentTopicPosted, payments)
	for {
		select {
		case <-ctx.Done():
			return
		case payment := <-payments:
			svc.postToWebhook(ctx, url, payment)
		}
	}
}

func (svc *AgencyService) postToWebhook(ctx context.Context, url string, payment models.Payment) {

	payload := new(bytes.Buffer)
	err := json.NewEncoder(payload).Encode(payment)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	// delivery is retried with exponential backoff, the payment itself is
	// already committed and must not be blocked on the webhook
	err = backoff.Retry(func() error {
		resp, err := http.Post(url, "application/json", bytes.NewReader(payload.Bytes()))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			msg, err := io.ReadAll(resp.Body)
			if err != nil {
				svc.Logger.Error(err)
			}
			svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx))
	if err != nil {
		svc.Logger.Errorf("Giving up on webhook delivery for receipt %s: %v", payment.ReceiptCode, err)
	}
}
