package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	rcdb "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/db"
	gw "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/gateway"
)

// VerifyPurchase forwards a receipt to RevenueCat for the caller and records the customer mapping.
func (s serviceImpl) VerifyPurchase(ctx context.Context, caller Caller, req VerifyPurchaseRequest) (VerifyPurchaseResponse, error) {
	if caller.UserID == "" {
		purchaseVerifications.WithLabelValues(outcomeRejected).Inc()
		return VerifyPurchaseResponse{}, fmt.Errorf("%w: Unauthorized", ErrUnauthorized)
	}
	if err := s.validatePurchase(req); err != nil {
		purchaseVerifications.WithLabelValues(outcomeRejected).Inc()
		return VerifyPurchaseResponse{}, err
	}
	platform := req.Platform
	if platform == "" {
		platform = defaultPlatform
	}

	appUserID := AppUserID(s.opts.AppUserIDPrefix, caller.UserID)
	subscriber, err := s.gw.PostReceipt(ctx, gw.ReceiptRequest{
		AppUserID:  appUserID,
		FetchToken: req.ReceiptData,
		ProductID:  req.ProductID,
		Platform:   platform,
	})
	if err != nil {
		purchaseVerifications.WithLabelValues(outcomeError).Inc()
		return VerifyPurchaseResponse{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// RevenueCat already holds the purchase; a failed mapping write is repaired by the next webhook.
	if err := s.repo.UpsertCustomer(ctx, rcdb.Customer{
		UserID:            caller.UserID,
		AppUserID:         appUserID,
		OriginalAppUserID: appUserID,
	}); err != nil {
		slog.Error("failed to upsert revenuecat customer", "user_id", caller.UserID, "err", err)
	}

	slog.Info("purchase verified", "user_id", caller.UserID, "product_id", req.ProductID, "platform", platform)
	purchaseVerifications.WithLabelValues(outcomeSuccess).Inc()
	return VerifyPurchaseResponse{Success: true, CustomerInfo: subscriber, AppUserID: appUserID}, nil
}

func (s serviceImpl) validatePurchase(req VerifyPurchaseRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: Missing required fields: %s", ErrBadRequest, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: invalid fields: %s", ErrBadRequest, strings.Join(invalid, ", "))
}
