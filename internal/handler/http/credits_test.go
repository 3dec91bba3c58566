package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// authedRequest builds a request whose context carries the identity normally
// placed there by the auth middleware.
func authedRequest(method, target string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.RoleCtxKey, models.RoleStandard)
	return req.WithContext(ctx)
}

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCredits, _, _ := newTestHandler(t, ctrl)

	mockCredits.EXPECT().GetBalance(gomock.Any(), int64(7)).
		Return(models.CreditBalance{Available: 3, TotalEarned: 3}, nil)

	rec := httptest.NewRecorder()
	h.getBalance(rec, authedRequest(http.MethodGet, "/api/credits/", 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available_credits":3`)
}

func TestGetBalance_NoIdentityInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _, _ := newTestHandler(t, ctrl)

	rec := httptest.NewRecorder()
	h.getBalance(rec, httptest.NewRequest(http.MethodGet, "/api/credits/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSpendCredit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCredits, _, _ := newTestHandler(t, ctrl)

	mockCredits.EXPECT().SpendCredit(gomock.Any(), int64(7)).
		Return(models.CreditBalance{Available: 2, Used: 1, TotalEarned: 3}, nil)

	rec := httptest.NewRecorder()
	h.spendCredit(rec, authedRequest(http.MethodPost, "/api/credits/spend", 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available_credits":2`)
}

func TestSpendCredit_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCredits, _, _ := newTestHandler(t, ctrl)

	mockCredits.EXPECT().SpendCredit(gomock.Any(), int64(7)).
		Return(models.CreditBalance{}, store.ErrInsufficientBalance)

	rec := httptest.NewRecorder()
	h.spendCredit(rec, authedRequest(http.MethodPost, "/api/credits/spend", 7))

	require.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestSpendCredit_BlockedAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockCredits, _, _ := newTestHandler(t, ctrl)

	mockCredits.EXPECT().SpendCredit(gomock.Any(), int64(7)).
		Return(models.CreditBalance{}, store.ErrUserBlocked)

	rec := httptest.NewRecorder()
	h.spendCredit(rec, authedRequest(http.MethodPost, "/api/credits/spend", 7))

	require.Equal(t, http.StatusForbidden, rec.Code)
}
