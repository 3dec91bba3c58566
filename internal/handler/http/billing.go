package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// maxWebhookBody caps the webhook payload size. Checkout events are small;
// anything larger is not from the billing provider.
const maxWebhookBody = 1 << 16

func (h *Handler) listPacks(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.BillingService.Packs(), http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func (h *Handler) createCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.BillingService.CreateCheckout(ctx, userID, req.PackID)
	if err != nil {
		log.Err(err).Str("pack_id", req.PackID).Msg("creating checkout session ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, session, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

// billingWebhook receives provider events. Authentication is the signature in
// the Stripe-Signature header; a bad signature must answer 400 so the
// provider retries only transient failures.
func (h *Handler) billingWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		log.Err(err).Msg("reading webhook payload ended with error")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.services.BillingService.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
		log.Err(err).Msg("handling billing webhook ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
