package http

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/mock"
	"github.com/MKhiriev/go-cv-tailor/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler builds a Handler over mocked services. The rate limiter is
// disabled (no redis client) so tests exercise the handlers themselves.
func newTestHandler(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*Handler,
	*mock.MockAuthService,
	*mock.MockCreditService,
	*mock.MockAdminService,
	*mock.MockBillingService,
) {
	t.Helper()
	mockAuth := mock.NewMockAuthService(ctrl)
	mockCredits := mock.NewMockCreditService(ctrl)
	mockAdmin := mock.NewMockAdminService(ctrl)
	mockBilling := mock.NewMockBillingService(ctrl)

	svcs := &service.Services{
		AuthService:    mockAuth,
		CreditService:  mockCredits,
		AdminService:   mockAdmin,
		BillingService: mockBilling,
	}

	h := NewHandler(svcs, nil, config.Server{}, logger.Nop())

	return h, mockAuth, mockCredits, mockAdmin, mockBilling
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
