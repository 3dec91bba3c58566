package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.services.AdminService.ListUsers(ctx, limit, offset)
	if err != nil {
		log.Err(err).Msg("listing users ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.AdminService.SearchUsers(ctx, r.URL.Query().Get("email"))
	if err != nil {
		log.Err(err).Msg("searching users ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func (h *Handler) grantCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.GrantCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	balance, err := h.services.AdminService.GrantCredits(ctx, userID, req.Amount, req.Reason)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("granting credits ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, balance, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func (h *Handler) resetCredits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.ResetCredits(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("resetting credits ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) setBlocked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromURL(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AdminService.SetBlocked(ctx, userID, req.Blocked); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("setting blocked flag ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stats, err := h.services.AdminService.Stats(ctx)
	if err != nil {
		log.Err(err).Msg("collecting admin stats ended with error")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK) //nolint:errcheck // nothing to do after headers are sent
}

func userIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
