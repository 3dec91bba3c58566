package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

// Metadata keys attached to every checkout session so the webhook can map a
// paid session back to an account and a pack.
const (
	metadataUserID = "user_id"
	metadataPackID = "pack_id"
)

// billingService is the concrete implementation of BillingService built on
// Stripe hosted checkout. Credits are granted only from the webhook, never
// from the redirect: the success URL proves nothing about payment.
type billingService struct {
	creditRepository store.CreditRepository

	webhookSecret string
	successURL    string
	cancelURL     string

	// packs maps pack id to its catalogue entry.
	packs map[string]models.CreditPack

	// createSession and verifyEvent wrap the Stripe SDK calls so tests can
	// substitute them.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	verifyEvent   func(payload []byte, signature, secret string) (stripe.Event, error)

	logger *logger.Logger
}

// NewBillingService constructs a BillingService from the billing
// configuration. The Stripe API key is installed globally, matching how the
// SDK expects to be initialised.
func NewBillingService(creditRepository store.CreditRepository, cfg config.Billing, logger *logger.Logger) BillingService {
	stripe.Key = cfg.StripeKey

	return &billingService{
		creditRepository: creditRepository,
		webhookSecret:    cfg.WebhookSecret,
		successURL:       cfg.SuccessURL,
		cancelURL:        cfg.CancelURL,
		packs: map[string]models.CreditPack{
			models.CreditPack3: {ID: models.CreditPack3, Credits: 3, PriceID: cfg.Pack3PriceID},
			models.CreditPack8: {ID: models.CreditPack8, Credits: 8, PriceID: cfg.Pack8PriceID},
		},
		createSession: session.New,
		verifyEvent:   webhook.ConstructEvent,
		logger:        logger,
	}
}

// Packs lists the purchasable credit packs in a stable order.
func (b *billingService) Packs() []models.CreditPack {
	return []models.CreditPack{b.packs[models.CreditPack3], b.packs[models.CreditPack8]}
}

// CreateCheckout opens a hosted checkout session for the given pack. The
// session carries the buyer's user id and the pack id in its metadata; that
// is the only link the webhook has back to the account.
func (b *billingService) CreateCheckout(ctx context.Context, userID int64, packID string) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	pack, ok := b.packs[packID]
	if !ok {
		log.Error().Str("pack_id", packID).Msg("unknown credit pack requested")
		return models.CheckoutSession{}, ErrUnknownPack
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(b.successURL),
		CancelURL:  stripe.String(b.cancelURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(pack.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata(metadataUserID, strconv.FormatInt(userID, 10))
	params.AddMetadata(metadataPackID, pack.ID)

	checkoutSession, err := b.createSession(params)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("pack_id", packID).Msg("creating checkout session ended with error")
		return models.CheckoutSession{}, fmt.Errorf("creating checkout session ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Str("pack_id", packID).Msg("checkout session created")

	return models.CheckoutSession{URL: checkoutSession.URL, PackID: pack.ID}, nil
}

// HandleWebhook verifies the provider signature, and for a completed checkout
// grants the purchased credits to the buyer. Events other than
// checkout.session.completed are acknowledged and ignored.
func (b *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	log := logger.FromContext(ctx)

	event, err := b.verifyEvent(payload, signature, b.webhookSecret)
	if err != nil {
		log.Err(err).Msg("webhook signature verification failed")
		return fmt.Errorf("%w: %w", ErrWebhookSignatureInvalid, err)
	}

	if event.Type != "checkout.session.completed" {
		log.Debug().Str("event_type", string(event.Type)).Msg("ignoring webhook event")
		return nil
	}

	var checkoutSession stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
		log.Err(err).Msg("parsing checkout session from webhook ended with error")
		return fmt.Errorf("parsing checkout session from webhook ended with error: %w", err)
	}

	userID, err := strconv.ParseInt(checkoutSession.Metadata[metadataUserID], 10, 64)
	if err != nil {
		log.Err(err).Msg("webhook session carries no valid user id")
		return fmt.Errorf("webhook session carries no valid user id: %w", err)
	}

	pack, ok := b.packs[checkoutSession.Metadata[metadataPackID]]
	if !ok {
		log.Error().Str("pack_id", checkoutSession.Metadata[metadataPackID]).Msg("webhook session references unknown pack")
		return ErrUnknownPack
	}

	balance, err := b.creditRepository.GrantCredits(ctx, userID, pack.Credits, "credit pack purchase", false)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("pack_id", pack.ID).Msg("granting purchased credits ended with error")
		return fmt.Errorf("granting purchased credits ended with error: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Str("pack_id", pack.ID).
		Int64("available", balance.Available).
		Msg("purchased credits granted")

	return nil
}
