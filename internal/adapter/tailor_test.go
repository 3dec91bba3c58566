package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/throttle"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTailorAdapter(t *testing.T, serverURL string) TailorAdapter {
	t.Helper()
	a, err := NewHTTPTailorAdapter(config.ClientAdapter{TailorAddress: serverURL}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestTailorProbe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	require.NoError(t, a.Probe(context.Background()))
}

func TestTailorGenerateFromText_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, "Bearer tailor-token", r.Header.Get("Authorization"))

		var req models.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "my resume", req.ResumeText)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{
			TailoredResume:   "tailored text",
			CreditsRemaining: 2,
		})
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	a.SetToken("tailor-token")

	result, err := a.GenerateFromText(context.Background(), models.GenerateRequest{
		ResumeText:     "my resume",
		JobDescription: "the job",
	})

	require.NoError(t, err)
	assert.Equal(t, "tailored text", result.TailoredResume)
	assert.Equal(t, int64(2), result.CreditsRemaining)
}

// TestTailorGenerate_RateLimited verifies that a 429 response surfaces as a
// *throttle.HTTPError so the retry wrapper can classify it.
func TestTailorGenerate_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	_, err := a.GenerateFromText(context.Background(), models.GenerateRequest{ResumeText: "r"})

	require.Error(t, err)
	assert.True(t, throttle.IsStatus(err, http.StatusTooManyRequests))
}

// TestTailorGenerate_ServerError verifies the 5xx classification path.
func TestTailorGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	_, err := a.GenerateFromText(context.Background(), models.GenerateRequest{ResumeText: "r"})

	require.Error(t, err)
	assert.True(t, throttle.IsStatus(err, http.StatusBadGateway))
}

func TestTailorGenerateFromFile_Success(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(resumePath, []byte("%PDF-1.4 fake"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate/file", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "the job", r.FormValue("job_description"))

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "resume.pdf", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.GenerateResponse{TailoredResume: "tailored from file"})
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	result, err := a.GenerateFromFile(context.Background(), models.GenerateFileRequest{
		FilePath:       resumePath,
		JobDescription: "the job",
	})

	require.NoError(t, err)
	assert.Equal(t, "tailored from file", result.TailoredResume)
}

func TestTailorBalance_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/credits", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(models.CreditBalance{Available: 4, Used: 1, TotalEarned: 5})
	}))
	defer srv.Close()

	a := newTestTailorAdapter(t, srv.URL)
	balance, err := a.Balance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), balance.Available)
}
