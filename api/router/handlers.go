package router

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tbeaudouin05/tenderguard-api/api/auth"
	docapp "github.com/tbeaudouin05/tenderguard-api/api/services/documents/app"
	rcapp "github.com/tbeaudouin05/tenderguard-api/api/services/revenuecat/app"
)

const maxBodyBytes = 1 << 20

var errServiceUnavailable = errors.New("service not initialized")

type handlers struct {
	deps Deps
}

// verifyPurchase serves POST {productId, receiptData, platform} for an authenticated caller.
func (h handlers) verifyPurchase(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Service == nil {
		writeError(w, "purchase verification", errServiceUnavailable)
		return
	}
	caller, err := h.authenticate(r)
	if err != nil {
		writeError(w, "purchase verification", err)
		return
	}
	var req rcapp.VerifyPurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "purchase verification", err)
		return
	}
	resp, err := h.deps.Service.VerifyPurchase(r.Context(), caller, req)
	if err != nil {
		writeError(w, "purchase verification", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// receiveWebhook serves the unauthenticated RevenueCat webhook.
func (h handlers) receiveWebhook(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Service == nil {
		writeError(w, "revenuecat webhook", errServiceUnavailable)
		return
	}
	if h.deps.VerifyWebhookAuthorization {
		got := r.Header.Get("Authorization")
		if h.deps.WebhookSecret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.deps.WebhookSecret)) != 1 {
			writeError(w, "revenuecat webhook", fmt.Errorf("%w: invalid webhook authorization", rcapp.ErrUnauthorized))
			return
		}
	}
	var env rcapp.WebhookEnvelope
	if err := decodeJSON(w, r, &env); err != nil {
		writeError(w, "revenuecat webhook", fmt.Errorf("%w: %v", rcapp.ErrBadEvent, err))
		return
	}
	if _, err := h.deps.Service.HandleWebhook(r.Context(), env); err != nil {
		writeError(w, "revenuecat webhook", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// getSubscription returns the caller's subscription or null.
func (h handlers) getSubscription(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Service == nil {
		writeError(w, "subscription status", errServiceUnavailable)
		return
	}
	caller, err := h.authenticate(r)
	if err != nil {
		writeError(w, "subscription status", err)
		return
	}
	view, err := h.deps.Service.GetSubscription(r.Context(), caller)
	if err != nil {
		writeError(w, "subscription status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscription": view})
}

// createDocument records metadata for a file the caller uploaded.
func (h handlers) createDocument(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Documents == nil {
		writeError(w, "create document", errServiceUnavailable)
		return
	}
	caller, err := h.authenticate(r)
	if err != nil {
		writeError(w, "create document", err)
		return
	}
	var req docapp.CreateDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "create document", err)
		return
	}
	doc, err := h.deps.Documents.Create(r.Context(), caller.UserID, req)
	if err != nil {
		writeError(w, "create document", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc})
}

// listDocuments returns the caller's documents, newest first.
func (h handlers) listDocuments(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Documents == nil {
		writeError(w, "list documents", errServiceUnavailable)
		return
	}
	caller, err := h.authenticate(r)
	if err != nil {
		writeError(w, "list documents", err)
		return
	}
	docs, err := h.deps.Documents.List(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, "list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h handlers) updateDocumentStatus(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if h.deps.Documents == nil {
		writeError(w, "update document status", errServiceUnavailable)
		return
	}
	caller, err := h.authenticate(r)
	if err != nil {
		writeError(w, "update document status", err)
		return
	}
	var req docapp.UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, "update document status", err)
		return
	}
	doc, err := h.deps.Documents.UpdateStatus(r.Context(), caller.UserID, params["id"], req)
	if err != nil {
		writeError(w, "update document status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": doc})
}

func (h handlers) health(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	if h.deps.Health != nil {
		if err := h.deps.Health(r.Context()); err != nil {
			slog.Error("health check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unhealthy"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// authenticate verifies the bearer token and creates the caller's profile on first use.
func (h handlers) authenticate(r *http.Request) (rcapp.Caller, error) {
	if h.deps.Verifier == nil {
		return rcapp.Caller{}, auth.ErrUnauthorized
	}
	id, err := h.deps.Verifier.FromRequest(r)
	if err != nil {
		return rcapp.Caller{}, err
	}
	caller := rcapp.Caller{UserID: id.UserID, Email: id.Email, FullName: id.FullName}
	if h.deps.Service != nil {
		if _, err := h.deps.Service.EnsureProfile(r.Context(), caller); err != nil {
			slog.Error("failed to ensure profile", "user_id", caller.UserID, "err", err)
		}
	}
	return caller, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// writeError renders every failure as 400 {"error": "..."}.
func writeError(w http.ResponseWriter, op string, err error) {
	slog.Error(op+" error", "err", err)
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
