// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-cv-tailor/internal/service"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var validUser = models.User{
	Email:    "alice@example.com",
	Password: "super-secret",
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	registered := models.User{UserID: 1, Email: validUser.Email, AvailableCredits: 3, TotalCreditsEarned: 3}

	gomock.InOrder(
		mockAuth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(registered, nil),
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(registered, models.Token{SignedString: signedToken, UserID: 1}, nil),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
	assert.Contains(t, rec.Body.String(), `"available_credits":3`)
}

func TestRegister_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _, _ := newTestHandler(t, ctrl)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrEmailAlreadyExists)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(jsonBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	found := models.User{UserID: 1, Email: validUser.Email, AvailableCredits: 2}
	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(found, models.Token{SignedString: signedToken, UserID: 1}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer "+signedToken, rec.Header().Get("Authorization"))
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Token{}, service.ErrWrongPassword)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Token{}, store.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(jsonBody(t, validUser)))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// verify email
// ─────────────────────────────────────────────

func TestVerifyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().VerifyEmail(gomock.Any(), "tok-123").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify",
		strings.NewReader(jsonBody(t, models.VerifyEmailRequest{Token: "tok-123"})))
	rec := httptest.NewRecorder()

	h.verifyEmail(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyEmail_UnknownToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().VerifyEmail(gomock.Any(), "stale").Return(store.ErrTokenNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify",
		strings.NewReader(jsonBody(t, models.VerifyEmailRequest{Token: "stale"})))
	rec := httptest.NewRecorder()

	h.verifyEmail(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// password reset
// ─────────────────────────────────────────────

func TestRequestPasswordReset_UnknownEmailStaysSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().RequestPasswordReset(gomock.Any(), "ghost@example.com").
		Return("", store.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset",
		strings.NewReader(jsonBody(t, models.PasswordResetRequest{Email: "ghost@example.com"})))
	rec := httptest.NewRecorder()

	h.requestPasswordReset(rec, req)

	// не раскрываем, какие адреса зарегистрированы
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestConfirmPasswordReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _, _, _ := newTestHandler(t, ctrl)

	mockAuth.EXPECT().ConfirmPasswordReset(gomock.Any(), "tok-123", "new-pass").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset/confirm",
		strings.NewReader(jsonBody(t, models.PasswordResetConfirm{Token: "tok-123", NewPassword: "new-pass"})))
	rec := httptest.NewRecorder()

	h.confirmPasswordReset(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
