package http

import (
	"net/http"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
)

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	balance, err := h.services.CreditService.GetBalance(ctx, userID)
	if err != nil {
		log.Err(err).Msg("getting balance ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, balance, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func (h *Handler) spendCredit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	// atomic decrement-if-positive; a zero balance or a blocked account comes
	// back as a store sentinel and maps to 402/403
	balance, err := h.services.CreditService.SpendCredit(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("spending credit ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Debug().Int64("user_id", userID).Int64("available", balance.Available).Msg("credit spent")

	utils.WriteJSON(w, balance, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}
