package gateway

import (
	"context"
	"encoding/json"
)

// ReceiptRequest is the body RevenueCat expects when a receipt is posted for a subscriber.
type ReceiptRequest struct {
	AppUserID  string `json:"app_user_id"`
	FetchToken string `json:"fetch_token"`
	ProductID  string `json:"product_id"`
	Platform   string `json:"platform"`
}

// RevenueCatGateway abstracts the RevenueCat REST operations needed by the app layer.
// The subscriber payload is returned untouched so callers can pass it through.
type RevenueCatGateway interface {
	PostReceipt(ctx context.Context, req ReceiptRequest) (json.RawMessage, error)
}
