package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
)

const (
	verificationTokenPrefix = "verify:"
	resetTokenPrefix        = "reset:"
)

// redisTokenStore keeps email verification and password reset tokens in
// Redis. Expiry is delegated to Redis TTLs, so an expired token is simply a
// missing key and no sweeper job is needed.
type redisTokenStore struct {
	logger *logger.Logger
	client *redis.Client
}

// NewRedisClient connects to Redis and verifies the connection with a PING.
// The same client backs the token store and the HTTP rate-limit middleware.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisTokenStore returns a [TokenStore] backed by the given Redis client.
func NewRedisTokenStore(client *redis.Client, log *logger.Logger) TokenStore {
	return &redisTokenStore{client: client, logger: log}
}

// SaveVerificationToken stores an email verification token with the given TTL.
func (s *redisTokenStore) SaveVerificationToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.save(ctx, verificationTokenPrefix+token, userID, ttl)
}

// ConsumeVerificationToken resolves and deletes a verification token.
func (s *redisTokenStore) ConsumeVerificationToken(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, verificationTokenPrefix+token)
}

// SaveResetToken stores a password reset token with the given TTL.
func (s *redisTokenStore) SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.save(ctx, resetTokenPrefix+token, userID, ttl)
}

// ConsumeResetToken resolves and deletes a reset token.
func (s *redisTokenStore) ConsumeResetToken(ctx context.Context, token string) (int64, error) {
	return s.consume(ctx, resetTokenPrefix+token)
}

func (s *redisTokenStore) save(ctx context.Context, key string, userID int64, ttl time.Duration) error {
	log := logger.FromContext(ctx)

	if err := s.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisTokenStore.save").Msg("error saving token")
		return fmt.Errorf("error saving token: %w", err)
	}

	return nil
}

// consume uses GETDEL so a token can be redeemed at most once even under
// concurrent requests.
func (s *redisTokenStore) consume(ctx context.Context, key string) (int64, error) {
	log := logger.FromContext(ctx)

	value, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		log.Err(err).Str("func", "*redisTokenStore.consume").Msg("error consuming token")
		return 0, fmt.Errorf("error consuming token: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token payload: %w", err)
	}

	return userID, nil
}
