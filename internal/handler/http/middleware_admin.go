package http

import (
	"net/http"

	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// adminOnly gates the admin panel routes on the role claim placed in the
// context by the auth middleware. The capability travels with the token; no
// server-side session flag is consulted.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok || role != models.RoleAdmin {
			log.Warn().Str("role", role).Msg("admin route rejected for non-admin caller")
			http.Error(w, ErrAdminOnly.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
