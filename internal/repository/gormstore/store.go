// Package gormstore implements the MarketDB storage interface on a relational
// database through gorm. Optimistic concurrency uses a version column guard
// (`WHERE id = ? AND version = ?`); compound trade updates run inside a single
// gorm transaction so the transition, its attachments and the item-lock rows
// commit or roll back as one unit.
package gormstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
	"swapmarket/internal/repository"
)

// Store is the gorm-backed implementation of repository.MarketDB.
type Store struct {
	db *gorm.DB
}

// ensure Store implements the interface
var _ repository.MarketDB = (*Store)(nil)

// NewStore opens the database and migrates the negotiation schema.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&offerRecord{}, &tradeRecord{}, &tradeItemRecord{},
		&shipmentRecord{}, &paymentRecord{}, &disputeRecord{}, &itemLockRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// InsertOffer stores a new offer, enforcing the one-active-offer-per-
// (product, buyer) rule and rejecting products locked by an active trade.
func (s *Store) InsertOffer(offer model.Offer) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var locks int64
		if err := tx.Model(&itemLockRecord{}).Where("product_id = ?", offer.ProductID).Count(&locks).Error; err != nil {
			return err
		}
		if locks > 0 {
			return fmt.Errorf("insert offer for product %s: %w", offer.ProductID, marketerrors.ErrItemLocked)
		}

		var active int64
		err := tx.Model(&offerRecord{}).
			Where("product_id = ? AND buyer_id = ? AND status IN ?",
				offer.ProductID, offer.BuyerID, []string{model.OfferPending, model.OfferCountered}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("insert offer for product %s: %w", offer.ProductID, marketerrors.ErrDuplicateActiveOffer)
		}

		rec := offerToRecord(offer)
		rec.Version = 1
		return tx.Create(&rec).Error
	})
}

// GetOffer returns an offer by id
func (s *Store) GetOffer(offerID string) (model.Offer, error) {
	var rec offerRecord
	if err := s.db.First(&rec, "offer_id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, marketerrors.ErrOfferNotFound)
		}
		return model.Offer{}, err
	}
	return rec.toModel(), nil
}

// UpdateOffer replaces an offer under an optimistic version check.
func (s *Store) UpdateOffer(offer model.Offer) error {
	rec := offerToRecord(offer)
	rec.Version = offer.Version + 1

	res := s.db.Model(&offerRecord{}).
		Where("offer_id = ? AND version = ?", offer.OfferID, offer.Version).
		Select("*").Omit("id", "offer_id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.staleOrMissingOffer(offer.OfferID)
	}
	return nil
}

// ListOffersByUser returns offers the user participates in, newest first.
func (s *Store) ListOffersByUser(userID string, limit, offset int) ([]model.Offer, error) {
	var recs []offerRecord
	err := s.db.
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	offers := make([]model.Offer, 0, len(recs))
	for _, r := range recs {
		offers = append(offers, r.toModel())
	}
	return offers, nil
}

// DueOffers returns active offers whose expiry has passed.
func (s *Store) DueOffers(now time.Time) ([]model.Offer, error) {
	var recs []offerRecord
	err := s.db.
		Where("status IN ? AND expires_at < ?", []string{model.OfferPending, model.OfferCountered}, now).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	offers := make([]model.Offer, 0, len(recs))
	for _, r := range recs {
		offers = append(offers, r.toModel())
	}
	return offers, nil
}

// InsertTrade stores a new trade, its items and its item locks in one
// transaction. A conflicting lock or active offer fails the whole insert.
func (s *Store) InsertTrade(trade model.Trade) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkLockable(tx, trade.TradeID, trade.ProductIDs()); err != nil {
			return err
		}

		rec := tradeToRecord(trade)
		rec.Version = 1
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, it := range trade.Items {
			itemRec := itemToRecord(it)
			if err := tx.Create(&itemRec).Error; err != nil {
				return err
			}
		}
		for _, p := range trade.ProductIDs() {
			if err := tx.Create(&itemLockRecord{ProductID: p, TradeID: trade.TradeID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTrade returns a trade with its items by id
func (s *Store) GetTrade(tradeID string) (model.Trade, error) {
	var rec tradeRecord
	if err := s.db.First(&rec, "trade_id = ?", tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Trade{}, fmt.Errorf("get trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
		}
		return model.Trade{}, err
	}

	var itemRecs []tradeItemRecord
	if err := s.db.Where("trade_id = ?", tradeID).Find(&itemRecs).Error; err != nil {
		return model.Trade{}, err
	}

	trade := rec.toModel()
	for _, ir := range itemRecs {
		trade.Items = append(trade.Items, ir.toModel())
	}
	return trade, nil
}

// UpdateTrade replaces a trade under an optimistic version check, applies the
// attachments, rewrites the item set if it changed and reconciles the lock
// rows, all inside one transaction.
func (s *Store) UpdateTrade(trade model.Trade, attach repository.TradeAttachments) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if !trade.Terminal() {
			if err := checkLockable(tx, trade.TradeID, trade.ProductIDs()); err != nil {
				return err
			}
		}

		rec := tradeToRecord(trade)
		rec.Version = trade.Version + 1
		res := tx.Model(&tradeRecord{}).
			Where("trade_id = ? AND version = ?", trade.TradeID, trade.Version).
			Select("*").Omit("id", "trade_id", "created_at").
			Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return staleOrMissingTrade(tx, trade.TradeID)
		}

		// The item set is authoritative on every update: a counter-proposal
		// swaps it wholesale.
		if err := tx.Where("trade_id = ?", trade.TradeID).Delete(&tradeItemRecord{}).Error; err != nil {
			return err
		}
		for _, it := range trade.Items {
			itemRec := itemToRecord(it)
			if err := tx.Create(&itemRec).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("trade_id = ?", trade.TradeID).Delete(&itemLockRecord{}).Error; err != nil {
			return err
		}
		if !trade.Terminal() {
			for _, p := range trade.ProductIDs() {
				if err := tx.Create(&itemLockRecord{ProductID: p, TradeID: trade.TradeID}).Error; err != nil {
					return err
				}
			}
		}

		for _, sh := range attach.InsertShipments {
			shRec := shipmentToRecord(sh)
			if err := tx.Create(&shRec).Error; err != nil {
				return err
			}
		}
		if attach.UpsertPayment != nil {
			if err := upsertPayment(tx, *attach.UpsertPayment); err != nil {
				return err
			}
		}
		if attach.UpsertDispute != nil {
			if err := upsertDispute(tx, *attach.UpsertDispute); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListTradesByUser returns trades the user participates in, newest first.
func (s *Store) ListTradesByUser(userID string, limit, offset int) ([]model.Trade, error) {
	var recs []tradeRecord
	err := s.db.
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	trades := make([]model.Trade, 0, len(recs))
	for _, r := range recs {
		trade, err := s.GetTrade(r.TradeID)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// DueTrades returns non-terminal, non-disputed trades whose current-phase
// deadline has passed.
func (s *Store) DueTrades(now time.Time) ([]model.Trade, error) {
	var recs []tradeRecord
	err := s.db.Where(
		"(status IN ? AND response_deadline < ?)"+
			" OR (status = ? AND payment_deadline < ?)"+
			" OR (status = ? AND shipping_deadline < ?)"+
			" OR (status = ? AND confirmation_deadline < ?)",
		[]string{model.TradeProposed, model.TradeCountered}, now,
		model.TradePaymentPending, now,
		model.TradeShippingPending, now,
		model.TradeConfirmationPending, now,
	).Find(&recs).Error
	if err != nil {
		return nil, err
	}

	trades := make([]model.Trade, 0, len(recs))
	for _, r := range recs {
		trade, err := s.GetTrade(r.TradeID)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// ShipmentsByTrade returns both shipment rows for a trade.
func (s *Store) ShipmentsByTrade(tradeID string) ([]model.TradeShipment, error) {
	var recs []shipmentRecord
	if err := s.db.Where("trade_id = ?", tradeID).Find(&recs).Error; err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("get shipments for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}

	out := make([]model.TradeShipment, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toModel())
	}
	return out, nil
}

// UpdateShipment replaces a shipment under an optimistic version check and
// returns the trade's shipment set re-read inside the same transaction.
func (s *Store) UpdateShipment(shipment model.TradeShipment) ([]model.TradeShipment, error) {
	var out []model.TradeShipment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rec := shipmentToRecord(shipment)
		rec.Version = shipment.Version + 1

		res := tx.Model(&shipmentRecord{}).
			Where("shipment_id = ? AND version = ?", shipment.ShipmentID, shipment.Version).
			Select("*").Omit("id", "shipment_id").
			Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("update shipment %s: %w", shipment.ShipmentID, marketerrors.ErrConcurrentModification)
		}

		var recs []shipmentRecord
		if err := tx.Where("trade_id = ?", shipment.TradeID).Find(&recs).Error; err != nil {
			return err
		}
		out = make([]model.TradeShipment, 0, len(recs))
		for _, r := range recs {
			out = append(out, r.toModel())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentByTrade returns the cash-payment row of a trade.
func (s *Store) PaymentByTrade(tradeID string) (model.TradeCashPayment, error) {
	var rec paymentRecord
	if err := s.db.First(&rec, "trade_id = ?", tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TradeCashPayment{}, fmt.Errorf("get payment for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
		}
		return model.TradeCashPayment{}, err
	}
	return rec.toModel(), nil
}

// DisputeByTrade returns the dispute record of a trade.
func (s *Store) DisputeByTrade(tradeID string) (model.TradeDispute, error) {
	var rec disputeRecord
	if err := s.db.First(&rec, "trade_id = ?", tradeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TradeDispute{}, fmt.Errorf("get dispute for trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
		}
		return model.TradeDispute{}, err
	}
	return rec.toModel(), nil
}

// IsItemLocked reports whether a product is committed to an active trade.
func (s *Store) IsItemLocked(productID string) (bool, error) {
	var count int64
	if err := s.db.Model(&itemLockRecord{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) staleOrMissingOffer(offerID string) error {
	var count int64
	if err := s.db.Model(&offerRecord{}).Where("offer_id = ?", offerID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("update offer %s: %w", offerID, marketerrors.ErrOfferNotFound)
	}
	return fmt.Errorf("update offer %s: %w", offerID, marketerrors.ErrConcurrentModification)
}

func staleOrMissingTrade(tx *gorm.DB, tradeID string) error {
	var count int64
	if err := tx.Model(&tradeRecord{}).Where("trade_id = ?", tradeID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("update trade %s: %w", tradeID, marketerrors.ErrTradeNotFound)
	}
	return fmt.Errorf("update trade %s: %w", tradeID, marketerrors.ErrConcurrentModification)
}

// checkLockable verifies none of the products is locked by a different trade
// or carries an active offer. Must run inside the caller's transaction.
func checkLockable(tx *gorm.DB, tradeID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	var locks []itemLockRecord
	if err := tx.Where("product_id IN ?", productIDs).Find(&locks).Error; err != nil {
		return err
	}
	for _, l := range locks {
		if l.TradeID != tradeID {
			return fmt.Errorf("lock product %s: %w", l.ProductID, marketerrors.ErrItemLocked)
		}
	}

	var active int64
	err := tx.Model(&offerRecord{}).
		Where("product_id IN ? AND status IN ?", productIDs, []string{model.OfferPending, model.OfferCountered}).
		Count(&active).Error
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("lock products: %w", marketerrors.ErrItemLocked)
	}
	return nil
}

func upsertPayment(tx *gorm.DB, p model.TradeCashPayment) error {
	var existing paymentRecord
	err := tx.First(&existing, "trade_id = ?", p.TradeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec := paymentToRecord(p)
		rec.Version = p.Version + 1
		return tx.Create(&rec).Error
	}
	if err != nil {
		return err
	}

	rec := paymentToRecord(p)
	rec.Version = p.Version + 1
	res := tx.Model(&paymentRecord{}).
		Where("payment_id = ? AND version = ?", p.PaymentID, p.Version).
		Select("*").Omit("id", "payment_id").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update payment %s: %w", p.PaymentID, marketerrors.ErrConcurrentModification)
	}
	return nil
}

func upsertDispute(tx *gorm.DB, d model.TradeDispute) error {
	var existing disputeRecord
	err := tx.First(&existing, "trade_id = ?", d.TradeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec := disputeToRecord(d)
		return tx.Create(&rec).Error
	}
	if err != nil {
		return err
	}
	rec := disputeToRecord(d)
	return tx.Model(&disputeRecord{}).
		Where("dispute_id = ?", d.DisputeID).
		Select("*").Omit("id", "dispute_id", "created_at").
		Updates(rec).Error
}
