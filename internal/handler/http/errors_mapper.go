package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cv-tailor/internal/service"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrUnknownPack:             http.StatusBadRequest,
	service.ErrWebhookSignatureInvalid: http.StatusBadRequest,

	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrUserNotFound:        http.StatusNotFound,
	store.ErrInsufficientBalance: http.StatusPaymentRequired,
	store.ErrUserBlocked:         http.StatusForbidden,
	store.ErrTokenNotFound:       http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrAwardNotSaved:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
