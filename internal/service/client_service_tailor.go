package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/internal/throttle"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// maxGenerationRetries bounds the retry loop around a single generation call.
// One extra attempt: a cold-starting backend gets a second chance, two calls
// in total before the caller sees an error.
const maxGenerationRetries = 1

// clientTailorService is the concrete implementation of ClientTailorService.
//
// Every generation passes the same gauntlet, in order:
//  1. sliding-window admission (rejections are free and don't count),
//  2. spend cooldown since the previous successful generation,
//  3. optimistic local spend against the cached balance,
//  4. authoritative spend on the account server,
//  5. the generation call itself, under bounded retry with backoff.
//
// Steps 1-2 exist because the tailoring backend is a free-tier deployment
// that buckles under bursts; steps 3-4 keep the credit counters honest.
type clientTailorService struct {
	ledgerRepository store.LocalLedgerRepository
	serverAdapter    adapter.ServerAdapter
	tailorAdapter    adapter.TailorAdapter

	limiter  *throttle.Limiter
	retrier  *throttle.Retrier
	cooldown time.Duration

	// now is split out for tests
	now func() time.Time

	logger *logger.Logger
}

// NewClientTailorService builds the generation pipeline from the throttle
// configuration and the outbound adapters.
func NewClientTailorService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, tailorAdapter adapter.TailorAdapter, cfg config.ClientThrottle, logger *logger.Logger) ClientTailorService {
	return &clientTailorService{
		ledgerRepository: storages.LedgerRepository,
		serverAdapter:    serverAdapter,
		tailorAdapter:    tailorAdapter,
		limiter:          throttle.NewLimiter(cfg.MaxCallsPerMinute, cfg.MinCallSpacing),
		retrier:          throttle.NewRetrier(maxGenerationRetries),
		cooldown:         cfg.GenerationCooldown,
		now:              time.Now,
		logger:           logger,
	}
}

// Generate tailors a plaintext resume to a job description.
func (c *clientTailorService) Generate(ctx context.Context, resumeText, jobDescription string) (models.GenerateResponse, error) {
	if resumeText == "" || jobDescription == "" {
		return models.GenerateResponse{}, ErrInvalidDataProvided
	}

	return c.generate(ctx, func(ctx context.Context) (models.GenerateResponse, error) {
		return c.tailorAdapter.GenerateFromText(ctx, models.GenerateRequest{
			ResumeText:     resumeText,
			JobDescription: jobDescription,
		})
	})
}

// GenerateFromFile tailors a resume uploaded from a local file.
func (c *clientTailorService) GenerateFromFile(ctx context.Context, filePath, jobDescription string) (models.GenerateResponse, error) {
	if filePath == "" || jobDescription == "" {
		return models.GenerateResponse{}, ErrInvalidDataProvided
	}

	return c.generate(ctx, func(ctx context.Context) (models.GenerateResponse, error) {
		return c.tailorAdapter.GenerateFromFile(ctx, models.GenerateFileRequest{
			FilePath:       filePath,
			JobDescription: jobDescription,
		})
	})
}

// Probe checks whether the tailoring backend is reachable and warm. Probes
// bypass the admission pipeline; they cost nothing.
func (c *clientTailorService) Probe(ctx context.Context) error {
	return c.tailorAdapter.Probe(ctx)
}

// generate runs the admission pipeline and then the actual call.
func (c *clientTailorService) generate(ctx context.Context, call func(ctx context.Context) (models.GenerateResponse, error)) (models.GenerateResponse, error) {
	log := logger.FromContext(ctx)

	if ok, wait := c.limiter.Allow(); !ok {
		log.Info().Dur("wait", wait).Msg("generation rejected by local window")
		return models.GenerateResponse{}, &ThrottledError{Wait: wait}
	}

	lastGeneration, err := c.ledgerRepository.LastGeneration(ctx)
	if err != nil {
		return models.GenerateResponse{}, err
	}
	if !lastGeneration.IsZero() {
		if remaining := c.cooldown - c.now().Sub(lastGeneration); remaining > 0 {
			log.Info().Dur("remaining", remaining).Msg("generation rejected by spend cooldown")
			return models.GenerateResponse{}, &CooldownError{Remaining: remaining}
		}
	}

	if err := c.spendCredit(ctx); err != nil {
		return models.GenerateResponse{}, err
	}

	if err := c.ledgerRepository.SetLastGeneration(ctx, c.now()); err != nil {
		log.Err(err).Msg("recording generation time ended with error")
	}
	c.limiter.Record()

	response, err := throttle.Do(ctx, c.retrier, "generate", func() (models.GenerateResponse, error) {
		return call(ctx)
	})
	if err != nil {
		// the credit is already spent server-side; a refund would need the
		// backend to confirm the generation never ran, which it cannot
		log.Err(err).Msg("generation ended with error after spend")
		return models.GenerateResponse{}, err
	}

	return response, nil
}

// spendCredit applies the optimistic local spend and then the authoritative
// server spend. On any server-side failure the local mirror is restored, so
// a failed attempt never eats a cached credit.
func (c *clientTailorService) spendCredit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	before, err := c.ledgerRepository.GetBalance(ctx)
	if errors.Is(err, store.ErrLedgerNotInitialized) {
		if before, err = c.syncFromServer(ctx); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err := c.ledgerRepository.Spend(ctx); err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			// the mirror might be stale; the server may know about credits
			// bought from another device
			if synced, syncErr := c.syncFromServer(ctx); syncErr == nil && synced.Available > 0 {
				before = synced
				if _, err = c.ledgerRepository.Spend(ctx); err != nil {
					return err
				}
			} else {
				return err
			}
		} else {
			return err
		}
	}

	serverBalance, err := c.serverAdapter.SpendCredit(ctx)
	if err != nil {
		if rollbackErr := c.ledgerRepository.Overwrite(ctx, before); rollbackErr != nil {
			log.Err(rollbackErr).Msg("rolling back optimistic spend ended with error")
		}
		if errors.Is(err, adapter.ErrInsufficientCredits) {
			// trust the server and make the mirror agree with it
			if _, syncErr := c.syncFromServer(ctx); syncErr != nil {
				log.Err(syncErr).Msg("resync after rejected spend ended with error")
			}
		}
		log.Err(err).Msg("server spend ended with error")
		return fmt.Errorf("server spend ended with error: %w", err)
	}

	if err := c.ledgerRepository.Overwrite(ctx, serverBalance); err != nil {
		log.Err(err).Msg("mirroring server balance ended with error")
	}

	return nil
}

func (c *clientTailorService) syncFromServer(ctx context.Context) (models.CreditBalance, error) {
	balance, err := c.serverAdapter.GetBalance(ctx)
	if err != nil {
		return models.CreditBalance{}, fmt.Errorf("fetching balance from server ended with error: %w", err)
	}
	if err := c.ledgerRepository.Overwrite(ctx, balance); err != nil {
		return models.CreditBalance{}, err
	}
	return balance, nil
}
