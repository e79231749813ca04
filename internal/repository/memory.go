package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of MarketDB.
// A single mutex scopes every write, which makes the compound trade updates
// (transition + attachments + lock bookkeeping) all-or-nothing.
type MemoryRepo struct {
	mu           sync.RWMutex
	offers       map[string]model.Offer
	trades       map[string]model.Trade
	shipments    map[string][]model.TradeShipment   // key: tradeID
	payments     map[string]model.TradeCashPayment  // key: tradeID
	disputes     map[string]model.TradeDispute      // key: tradeID
	tradeLocks   map[string]string                  // key: productID -> value: locking tradeID
	activeOffers map[string]map[string]string       // key: productID -> buyerID -> offerID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		offers:       make(map[string]model.Offer),
		trades:       make(map[string]model.Trade),
		shipments:    make(map[string][]model.TradeShipment),
		payments:     make(map[string]model.TradeCashPayment),
		disputes:     make(map[string]model.TradeDispute),
		tradeLocks:   make(map[string]string),
		activeOffers: make(map[string]map[string]string),
	}
}

// InsertOffer stores a new offer, enforcing the one-active-offer-per-
// (product, buyer) rule and rejecting products locked by an active trade.
func (r *MemoryRepo) InsertOffer(offer model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, locked := r.tradeLocks[offer.ProductID]; locked {
		return fmt.Errorf("insert offer for product %s: %w", offer.ProductID, marketerrors.ErrItemLocked)
	}
	if _, dup := r.activeOffers[offer.ProductID][offer.BuyerID]; dup {
		return fmt.Errorf("insert offer for product %s: %w", offer.ProductID, marketerrors.ErrDuplicateActiveOffer)
	}

	offer.Version = 1
	r.offers[offer.OfferID] = offer
	r.indexOffer(offer)
	return nil
}

// GetOffer returns an offer by id
func (r *MemoryRepo) GetOffer(offerID string) (model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, marketerrors.ErrOfferNotFound)
	}
	return offer, nil
}

// UpdateOffer replaces an offer under an optimistic version check.
func (r *MemoryRepo) UpdateOffer(offer model.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.offers[offer.OfferID]
	if !ok {
		return fmt.Errorf("update offer %s: %w", offer.OfferID, marketerrors.ErrOfferNotFound)
	}
	if stored.Version != offer.Version {
		return fmt.Errorf("update offer %s: %w", offer.OfferID, marketerrors.ErrConcurrentModification)
	}

	offer.Version++
	r.offers[offer.OfferID] = offer

	if offer.Active() {
		r.indexOffer(offer)
	} else {
		r.unindexOffer(offer)
	}
	return nil
}

// ListOffersByUser returns offers the user participates in, newest first.
func (r *MemoryRepo) ListOffersByUser(userID string, limit, offset int) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Offer
	for _, o := range r.offers {
		if o.BuyerID == userID || o.SellerID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// DueOffers returns active offers whose expiry has passed.
func (r *MemoryRepo) DueOffers(now time.Time) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []model.Offer
	for _, o := range r.offers {
		if o.Active() && now.After(o.ExpiresAt) {
			due = append(due, o)
		}
	}
	return due, nil
}

// InsertTrade stores a new trade and locks every referenced product in the
// same critical section. A product already locked by another trade, or with
// any active offer on it, fails the whole insert.
func (r *MemoryRepo) InsertTrade(trade model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkLockable(trade.TradeID, trade.ProductIDs()); err != nil {
		return err
	}

	trade.Version = 1
	trade.Items = copyItems(trade.Items)
	r.trades[trade.TradeID] = trade
	for _, p := range trade.ProductIDs() {
		r.tradeLocks[p] = trade.TradeID
	}
	return nil
}

// GetTrade returns a trade by id
func (r *MemoryRepo) GetTrade(tradeID string) (model.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trade, ok := r.trades[tradeID]
	if !ok {
		return model.Trade{}, fmt.Errorf("get trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}
	trade.Items = copyItems(trade.Items)
	return trade, nil
}

// UpdateTrade replaces a trade under an optimistic version check, applies the
// attachments and reconciles item locks, all-or-nothing. A countered trade's
// swapped item set is re-locked here; a terminal trade releases its locks.
func (r *MemoryRepo) UpdateTrade(trade model.Trade, attach TradeAttachments) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.trades[trade.TradeID]
	if !ok {
		return fmt.Errorf("update trade %s: %w", trade.TradeID, marketerrors.ErrTradeNotFound)
	}
	if stored.Version != trade.Version {
		return fmt.Errorf("update trade %s: %w", trade.TradeID, marketerrors.ErrConcurrentModification)
	}

	if !trade.Terminal() {
		if err := r.checkLockable(trade.TradeID, trade.ProductIDs()); err != nil {
			return err
		}
	}

	// Point of no return: mutate state.
	for _, p := range stored.ProductIDs() {
		if r.tradeLocks[p] == trade.TradeID {
			delete(r.tradeLocks, p)
		}
	}
	if !trade.Terminal() {
		for _, p := range trade.ProductIDs() {
			r.tradeLocks[p] = trade.TradeID
		}
	}

	trade.Version++
	trade.Items = copyItems(trade.Items)
	r.trades[trade.TradeID] = trade

	if len(attach.InsertShipments) > 0 {
		r.shipments[trade.TradeID] = append(r.shipments[trade.TradeID], attach.InsertShipments...)
	}
	if attach.UpsertPayment != nil {
		p := *attach.UpsertPayment
		p.Version++
		r.payments[trade.TradeID] = p
	}
	if attach.UpsertDispute != nil {
		r.disputes[trade.TradeID] = *attach.UpsertDispute
	}
	return nil
}

// ListTradesByUser returns trades the user participates in, newest first.
func (r *MemoryRepo) ListTradesByUser(userID string, limit, offset int) ([]model.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Trade
	for _, t := range r.trades {
		if t.Participant(userID) {
			t.Items = copyItems(t.Items)
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

// DueTrades returns non-terminal, non-disputed trades whose current-phase
// deadline has passed.
func (r *MemoryRepo) DueTrades(now time.Time) ([]model.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []model.Trade
	for _, t := range r.trades {
		if t.Terminal() || t.Status == model.TradeDisputed {
			continue
		}
		if d := PhaseDeadline(t); d != nil && now.After(*d) {
			t.Items = copyItems(t.Items)
			due = append(due, t)
		}
	}
	return due, nil
}

// ShipmentsByTrade returns both shipment rows for a trade.
func (r *MemoryRepo) ShipmentsByTrade(tradeID string) ([]model.TradeShipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ships, ok := r.shipments[tradeID]
	if !ok || len(ships) == 0 {
		return nil, fmt.Errorf("get shipments for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}
	return append([]model.TradeShipment(nil), ships...), nil
}

// UpdateShipment replaces a shipment under an optimistic version check and
// returns the trade's shipment set as of the same critical section.
func (r *MemoryRepo) UpdateShipment(shipment model.TradeShipment) ([]model.TradeShipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ships := r.shipments[shipment.TradeID]
	for i, s := range ships {
		if s.ShipmentID != shipment.ShipmentID {
			continue
		}
		if s.Version != shipment.Version {
			return nil, fmt.Errorf("update shipment %s: %w", shipment.ShipmentID, marketerrors.ErrConcurrentModification)
		}
		shipment.Version++
		ships[i] = shipment
		return append([]model.TradeShipment(nil), ships...), nil
	}
	return nil, fmt.Errorf("update shipment %s: %w", shipment.ShipmentID, marketerrors.ErrTradeNotFound)
}

// PaymentByTrade returns the cash-payment row of a trade.
func (r *MemoryRepo) PaymentByTrade(tradeID string) (model.TradeCashPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[tradeID]
	if !ok {
		return model.TradeCashPayment{}, fmt.Errorf("get payment for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}
	return p, nil
}

// DisputeByTrade returns the dispute record of a trade.
func (r *MemoryRepo) DisputeByTrade(tradeID string) (model.TradeDispute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.disputes[tradeID]
	if !ok {
		return model.TradeDispute{}, fmt.Errorf("get dispute for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}
	return d, nil
}

// IsItemLocked reports whether a product is committed to an active trade.
func (r *MemoryRepo) IsItemLocked(productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, locked := r.tradeLocks[productID]
	return locked, nil
}

// checkLockable verifies none of the products is locked by a different trade
// or carries an active offer. Caller holds the write lock.
func (r *MemoryRepo) checkLockable(tradeID string, productIDs []string) error {
	for _, p := range productIDs {
		if holder, locked := r.tradeLocks[p]; locked && holder != tradeID {
			return fmt.Errorf("lock product %s: %w", p, marketerrors.ErrItemLocked)
		}
		if len(r.activeOffers[p]) > 0 {
			return fmt.Errorf("lock product %s: %w", p, marketerrors.ErrItemLocked)
		}
	}
	return nil
}

func (r *MemoryRepo) indexOffer(offer model.Offer) {
	byBuyer, ok := r.activeOffers[offer.ProductID]
	if !ok {
		byBuyer = make(map[string]string)
		r.activeOffers[offer.ProductID] = byBuyer
	}
	byBuyer[offer.BuyerID] = offer.OfferID
}

func (r *MemoryRepo) unindexOffer(offer model.Offer) {
	byBuyer := r.activeOffers[offer.ProductID]
	delete(byBuyer, offer.BuyerID)
	if len(byBuyer) == 0 {
		delete(r.activeOffers, offer.ProductID)
	}
}

func copyItems(items []model.TradeItem) []model.TradeItem {
	return append([]model.TradeItem(nil), items...)
}

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
