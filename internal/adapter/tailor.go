package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/throttle"
	"github.com/MKhiriev/go-cv-tailor/internal/utils"
	"github.com/MKhiriev/go-cv-tailor/models"
	"github.com/go-resty/resty/v2"
)

type httpTailorAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPTailorAdapter constructs an HTTP implementation of [TailorAdapter]
// for the hosted resume-tailoring backend at adapterCfg.TailorAddress.
//
// Non-2xx responses are reported as [throttle.HTTPError] values so that the
// retry wrapper can classify them (429, 5xx, other). The adapter itself never
// retries and never throttles; that policy belongs to the caller.
func NewHTTPTailorAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (TailorAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.TailorAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter tailor address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpTailorAdapter{client: client, logger: logger}, nil
}

// SetToken implements [TailorAdapter].
func (h *httpTailorAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Probe implements [TailorAdapter] via GET /health. A cheap request used to
// surface free-tier cold starts before the user commits a credit.
func (h *httpTailorAdapter) Probe(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("probe request: %w", err)
	}

	return mapTailorError(resp)
}

// GenerateFromText implements [TailorAdapter] via POST /api/generate.
func (h *httpTailorAdapter) GenerateFromText(ctx context.Context, req models.GenerateRequest) (models.GenerateResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/generate")
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("generate request: %w", err)
	}
	if err = mapTailorError(resp); err != nil {
		return models.GenerateResponse{}, err
	}

	var result models.GenerateResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.GenerateResponse{}, fmt.Errorf("decode generate response: %w", err)
	}

	return result, nil
}

// GenerateFromFile implements [TailorAdapter] via a multipart POST to
// /api/generate/file. The resume file travels as the "resume" part; the job
// description as a form field.
func (h *httpTailorAdapter) GenerateFromFile(ctx context.Context, req models.GenerateFileRequest) (models.GenerateResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetFile("resume", req.FilePath).
		SetFormData(map[string]string{"job_description": req.JobDescription}).
		Post("/api/generate/file")
	if err != nil {
		return models.GenerateResponse{}, fmt.Errorf("generate file request: %w", err)
	}
	if err = mapTailorError(resp); err != nil {
		return models.GenerateResponse{}, err
	}

	var result models.GenerateResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.GenerateResponse{}, fmt.Errorf("decode generate file response: %w", err)
	}

	return result, nil
}

// Balance implements [TailorAdapter] via GET /api/credits.
func (h *httpTailorAdapter) Balance(ctx context.Context) (models.CreditBalance, error) {
	resp, err := h.authedRequest(ctx).Get("/api/credits")
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("balance request: %w", err)
	}
	if err = mapTailorError(resp); err != nil {
		return models.CreditBalance{}, err
	}

	var balance models.CreditBalance
	if err = json.Unmarshal(resp.Body(), &balance); err != nil {
		return models.CreditBalance{}, fmt.Errorf("decode balance response: %w", err)
	}

	return balance, nil
}

func (h *httpTailorAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

// mapTailorError converts a non-2xx backend response into a
// *throttle.HTTPError carrying the status code and trimmed body.
func mapTailorError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	return throttle.NewHTTPError(resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
}
