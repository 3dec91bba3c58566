package http

import (
	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/service"
)

type Handler struct {
	services *service.Services

	// redis backs the per-IP rate limiter; nil disables the middleware
	redis              *redis.Client
	rateLimitPerMinute int

	logger *logger.Logger
}

func NewHandler(services *service.Services, redisClient *redis.Client, serverCfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:           services,
		redis:              redisClient,
		rateLimitPerMinute: serverCfg.RateLimitPerMinute,
		logger:             logger,
	}
}
