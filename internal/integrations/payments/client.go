package payments

import (
	"fmt"
	"math"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Client клиент платежного шлюза Omise
type Client struct {
	omc      *omise.Client
	currency string
	log      Logger
}

// NewClient создает новый экземпляр платежного клиента
func NewClient(publicKey, secretKey, currency string, log Logger) (*Client, error) {
	omc, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create omise client: %v", ErrInternal, err)
	}

	return &Client{
		omc:      omc,
		currency: currency,
		log:      log,
	}, nil
}

// Charge списывает оплату заказа по токену карты
// Сумма конвертируется в минимальные единицы валюты (пайсы)
func (c *Client) Charge(req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 || req.CardToken == "" {
		return nil, fmt.Errorf("%w: invalid charge params", ErrInternal)
	}

	charge := &omise.Charge{}
	createCharge := &operations.CreateCharge{
		Amount:   int64(math.Round(req.Amount * 100)),
		Currency: c.currency,
		Card:     req.CardToken,
		Metadata: map[string]any{"order_ref": req.OrderRef},
	}

	if err := c.omc.Do(charge, createCharge); err != nil {
		c.log.Error("[Payments] Charge request failed for order_ref=%s: %v", req.OrderRef, err)
		return nil, fmt.Errorf("%w: create charge: %v", ErrInternal, err)
	}

	if string(charge.Status) != "successful" {
		var failureCode, failureMessage string
		if charge.FailureCode != nil {
			failureCode = *charge.FailureCode
		}
		if charge.FailureMessage != nil {
			failureMessage = *charge.FailureMessage
		}
		c.log.Warn("[Payments] Charge declined for order_ref=%s: status=%s code=%s message=%s",
			req.OrderRef, charge.Status, failureCode, failureMessage)
		return nil, fmt.Errorf("%w: status=%s code=%s", ErrChargeDeclined, charge.Status, failureCode)
	}

	c.log.Info("[Payments] Charge %s captured for order_ref=%s amount=%d %s",
		charge.ID, req.OrderRef, charge.Amount, charge.Currency)

	return &ChargeResult{
		ChargeID: charge.ID,
		Amount:   float64(charge.Amount) / 100,
		Currency: charge.Currency,
	}, nil
}
