package utils

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("cv-tailor", 42, models.RoleStandard, time.Hour, "secret")

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, models.RoleStandard, token.Role)
	assert.False(t, token.IsAdmin())
}

func TestGenerateJWTToken_AdminRole(t *testing.T) {
	token, err := GenerateJWTToken("cv-tailor", 1, models.RoleAdmin, time.Hour, "secret")

	require.NoError(t, err)
	assert.True(t, token.IsAdmin())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		role     string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", models.RoleStandard, time.Hour, "secret"},
		{"empty role", "cv-tailor", "", time.Hour, "secret"},
		{"zero duration", "cv-tailor", models.RoleStandard, 0, "secret"},
		{"empty sign key", "cv-tailor", models.RoleStandard, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 42, tt.role, tt.duration, tt.signKey)
			require.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	issued, err := GenerateJWTToken("cv-tailor", 42, models.RoleAdmin, time.Hour, "secret")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(issued.SignedString, "secret", "cv-tailor")

	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
	assert.True(t, parsed.IsAdmin())
}

func TestValidateAndParseJWTToken_WrongSignKey(t *testing.T) {
	issued, err := GenerateJWTToken("cv-tailor", 42, models.RoleStandard, time.Hour, "secret")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, "other-secret", "cv-tailor")

	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	issued, err := GenerateJWTToken("cv-tailor", 42, models.RoleStandard, time.Hour, "secret")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(issued.SignedString, "secret", "someone-else")

	require.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issued, err := GenerateJWTToken("cv-tailor", 42, models.RoleStandard, time.Nanosecond, "secret")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	_, err = ValidateAndParseJWTToken(issued.SignedString, "secret", "cv-tailor")

	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		expectError bool
		expected    string
	}{
		{"valid bearer", "Bearer abc.def.ghi", false, "abc.def.ghi"},
		{"extra whitespace", "  Bearer abc.def.ghi  ", false, "abc.def.ghi"},
		{"missing token", "Bearer ", true, ""},
		{"no scheme", "abc.def.ghi", true, ""},
		{"empty header", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ParseBearerToken(tt.header)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestDecodeTokenClaims(t *testing.T) {
	issued, err := GenerateJWTToken("test-issuer", 42, models.RoleAdmin, time.Hour, "secret-key")
	require.NoError(t, err)

	// decoding needs no sign key
	decoded, err := DecodeTokenClaims(issued.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), decoded.UserID)
	assert.Equal(t, models.RoleAdmin, decoded.Role)
	assert.True(t, decoded.IsAdmin())
}

func TestDecodeTokenClaims_Garbage(t *testing.T) {
	_, err := DecodeTokenClaims("not.a.token")
	require.Error(t, err)
}
