package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	"swapmarket/internal/marketerrors"
	"swapmarket/internal/models"
	"swapmarket/internal/repository"
	"swapmarket/utils"
)

// OfferService defines the business logic for single-item cash negotiation:
// a buyer proposes a price, the parties counter each other in turns, and the
// side facing the live proposal may accept or reject it.
type OfferService struct {
	repo        repository.MarketDB
	catalog     gateway.Catalog
	orders      gateway.Orders
	notifier    gateway.Notifier
	minFraction decimal.Decimal
	window      time.Duration
	pageSize    int
}

// NewOfferService creates a new OfferService instance
func NewOfferService(repo repository.MarketDB, catalog gateway.Catalog, orders gateway.Orders, notifier gateway.Notifier, cfg *config.Negotiation) *OfferService {
	return &OfferService{
		repo:        repo,
		catalog:     catalog,
		orders:      orders,
		notifier:    notifier,
		minFraction: decimal.NewFromFloat(cfg.MinOfferFraction),
		window:      cfg.OfferWindow,
		pageSize:    cfg.DefaultPageSize,
	}
}

// CreateOffer validates and records a buyer's opening offer on a product.
// The amount must be at least the configured fraction of the current listing
// price; the threshold is checked once, here, and never re-applied to the
// stored offer.
func (s *OfferService) CreateOffer(ctx context.Context, productID, buyerID string, amount decimal.Decimal) (models.Offer, error) {
	if productID == "" || buyerID == "" {
		return models.Offer{}, fmt.Errorf("service: %w - missing productID or buyerID", marketerrors.ErrValidation)
	}
	if amount.Sign() <= 0 {
		return models.Offer{}, fmt.Errorf("service: %w - non-positive offer amount", marketerrors.ErrValidation)
	}

	listing, err := s.catalog.GetListing(ctx, productID)
	if err != nil {
		if errors.Is(err, marketerrors.ErrProductNotFound) {
			return models.Offer{}, fmt.Errorf("service: product %s: %w", productID, err)
		}
		return models.Offer{}, fmt.Errorf("service: catalog lookup for %s failed: %v: %w", productID, err, marketerrors.ErrDependencyFailure)
	}

	if !listing.Purchasable() {
		return models.Offer{}, fmt.Errorf("service: %w - product %s is not purchasable", marketerrors.ErrValidation, productID)
	}
	if listing.OwnerID == buyerID {
		return models.Offer{}, fmt.Errorf("service: %w - cannot make an offer on your own product", marketerrors.ErrValidation)
	}

	minimum := listing.Price.Mul(s.minFraction)
	if amount.LessThan(minimum) {
		return models.Offer{}, fmt.Errorf("service: %w - amount below minimum of %s", marketerrors.ErrValidation, minimum.StringFixed(2))
	}

	now := time.Now().UTC()
	offer := models.Offer{
		OfferID:    utils.GenerateID(),
		ProductID:  productID,
		BuyerID:    buyerID,
		SellerID:   listing.OwnerID,
		Amount:     amount,
		Status:     models.OfferPending,
		ProposedBy: buyerID,
		ExpiresAt:  now.Add(s.window),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.InsertOffer(offer); err != nil {
		return models.Offer{}, fmt.Errorf("service: failed to record offer on product %s by buyer %s: %w", productID, buyerID, err)
	}

	s.notifier.Notify(offer.SellerID, "offer.created", map[string]any{
		"offer_id":   offer.OfferID,
		"product_id": offer.ProductID,
		"amount":     offer.Amount.StringFixed(2),
	})
	return offer, nil
}

// CounterOffer lets the party facing the live proposal put a new amount on
// the table, flipping the proposing side and restarting the expiry window.
func (s *OfferService) CounterOffer(ctx context.Context, offerID, actorID string, amount decimal.Decimal) (models.Offer, error) {
	if amount.Sign() <= 0 {
		return models.Offer{}, fmt.Errorf("service: %w - non-positive counter amount", marketerrors.ErrValidation)
	}

	offer, err := s.turn(offerID, actorID)
	if err != nil {
		return models.Offer{}, err
	}

	now := time.Now().UTC()
	offer.Amount = amount
	offer.Status = models.OfferCountered
	offer.ProposedBy = actorID
	offer.ExpiresAt = now.Add(s.window)
	offer.UpdatedAt = now

	if err := s.repo.UpdateOffer(offer); err != nil {
		return models.Offer{}, fmt.Errorf("service: failed to counter offer %s: %w", offerID, err)
	}

	s.notifier.Notify(offer.Counterparty(actorID), "offer.countered", map[string]any{
		"offer_id": offer.OfferID,
		"amount":   offer.Amount.StringFixed(2),
	})
	return offer, nil
}

// AcceptOffer closes the negotiation at the amount currently on the table and
// emits the fulfillment intent to the order subsystem. Under two concurrent
// decisions on the same offer, the version guard lets exactly one through.
func (s *OfferService) AcceptOffer(ctx context.Context, offerID, actorID string) (models.Offer, error) {
	offer, err := s.turn(offerID, actorID)
	if err != nil {
		return models.Offer{}, err
	}

	offer.Status = models.OfferAccepted
	offer.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOffer(offer); err != nil {
		return models.Offer{}, fmt.Errorf("service: failed to accept offer %s: %w", offerID, err)
	}

	s.notifier.Notify(offer.Counterparty(actorID), "offer.accepted", map[string]any{
		"offer_id": offer.OfferID,
		"amount":   offer.Amount.StringFixed(2),
	})

	// The offer is decided; order creation is the downstream intent and is
	// retried separately if the collaborator is down.
	if err := s.orders.CreateOrderFromOffer(ctx, offer.OfferID, offer.Amount); err != nil {
		utils.Error("order creation for accepted offer failed", map[string]any{
			"offer_id": offer.OfferID,
			"error":    err.Error(),
		})
		return offer, fmt.Errorf("service: order creation for offer %s failed: %v: %w", offerID, err, marketerrors.ErrDependencyFailure)
	}
	return offer, nil
}

// RejectOffer lets the party facing the live proposal decline it. Terminal.
func (s *OfferService) RejectOffer(ctx context.Context, offerID, actorID string) (models.Offer, error) {
	offer, err := s.turn(offerID, actorID)
	if err != nil {
		return models.Offer{}, err
	}

	offer.Status = models.OfferRejected
	offer.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOffer(offer); err != nil {
		return models.Offer{}, fmt.Errorf("service: failed to reject offer %s: %w", offerID, err)
	}

	s.notifier.Notify(offer.Counterparty(actorID), "offer.rejected", map[string]any{"offer_id": offer.OfferID})
	return offer, nil
}

// WithdrawOffer lets the buyer pull an active offer off the table. Terminal.
func (s *OfferService) WithdrawOffer(ctx context.Context, offerID, actorID string) (models.Offer, error) {
	offer, err := s.repo.GetOffer(offerID)
	if err != nil {
		return models.Offer{}, fmt.Errorf("service: %w", err)
	}
	if actorID != offer.BuyerID {
		return models.Offer{}, fmt.Errorf("service: %w - only the buyer may withdraw", marketerrors.ErrNotAuthorized)
	}
	if !offer.Active() {
		return models.Offer{}, fmt.Errorf("service: %w - offer %s is %s", marketerrors.ErrInvalidState, offerID, offer.Status)
	}

	offer.Status = models.OfferWithdrawn
	offer.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOffer(offer); err != nil {
		return models.Offer{}, fmt.Errorf("service: failed to withdraw offer %s: %w", offerID, err)
	}

	s.notifier.Notify(offer.SellerID, "offer.withdrawn", map[string]any{"offer_id": offer.OfferID})
	return offer, nil
}

// GetOffer returns a single offer, visible only to its participants.
func (s *OfferService) GetOffer(offerID, requesterID string) (models.Offer, error) {
	offer, err := s.repo.GetOffer(offerID)
	if err != nil {
		return models.Offer{}, fmt.Errorf("service: %w", err)
	}
	if requesterID != offer.BuyerID && requesterID != offer.SellerID {
		return models.Offer{}, fmt.Errorf("service: %w - not a party to offer %s", marketerrors.ErrNotAuthorized, offerID)
	}
	return offer, nil
}

// ListOffersByUser returns the user's offers, newest first, paginated.
func (s *OfferService) ListOffersByUser(userID string, limit, offset int) ([]models.Offer, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrValidation)
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	if offset < 0 {
		offset = 0
	}

	offers, err := s.repo.ListOffersByUser(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list offers for user %s: %w", userID, err)
	}
	return offers, nil
}

// ExpireOffers transitions every active offer past its expiry to expired.
// Scheduler-invoked and idempotent: an offer already moved on by a concurrent
// worker is skipped, never an error.
func (s *OfferService) ExpireOffers(now time.Time) (int, error) {
	due, err := s.repo.DueOffers(now)
	if err != nil {
		return 0, fmt.Errorf("service: failed to scan due offers: %w", err)
	}

	expired := 0
	for _, offer := range due {
		offer.Status = models.OfferExpired
		offer.UpdatedAt = now

		if err := s.repo.UpdateOffer(offer); err != nil {
			if errors.Is(err, marketerrors.ErrConcurrentModification) {
				continue // another worker already transitioned it
			}
			return expired, fmt.Errorf("service: failed to expire offer %s: %w", offer.OfferID, err)
		}
		expired++
		s.notifier.Notify(offer.BuyerID, "offer.expired", map[string]any{"offer_id": offer.OfferID})
	}
	return expired, nil
}

// turn loads an offer and verifies the actor is entitled to decide on the
// live proposal right now. An offer past its expiry is transitioned to
// expired on the spot and reported as such, never silently acted on.
func (s *OfferService) turn(offerID, actorID string) (models.Offer, error) {
	offer, err := s.repo.GetOffer(offerID)
	if err != nil {
		return models.Offer{}, fmt.Errorf("service: %w", err)
	}
	if !offer.Active() {
		return models.Offer{}, fmt.Errorf("service: %w - offer %s is %s", marketerrors.ErrInvalidState, offerID, offer.Status)
	}
	if offer.Counterparty(actorID) == "" {
		return models.Offer{}, fmt.Errorf("service: %w - not a party to offer %s", marketerrors.ErrNotAuthorized, offerID)
	}
	if actorID == offer.ProposedBy {
		return models.Offer{}, fmt.Errorf("service: %w - waiting on the other party", marketerrors.ErrNotAuthorized)
	}

	if now := time.Now().UTC(); now.After(offer.ExpiresAt) {
		offer.Status = models.OfferExpired
		offer.UpdatedAt = now
		if err := s.repo.UpdateOffer(offer); err != nil && !errors.Is(err, marketerrors.ErrConcurrentModification) {
			return models.Offer{}, fmt.Errorf("service: failed to expire offer %s: %w", offerID, err)
		}
		return models.Offer{}, fmt.Errorf("service: %w - offer %s expired at %s", marketerrors.ErrExpired, offerID, offer.ExpiresAt.Format(time.RFC3339))
	}
	return offer, nil
}
