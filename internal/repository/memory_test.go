package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
)

func activeOffer(offerID, productID, buyerID string) model.Offer {
	now := time.Now().UTC()
	return model.Offer{
		OfferID:    offerID,
		ProductID:  productID,
		BuyerID:    buyerID,
		SellerID:   "seller1",
		Amount:     decimal.NewFromInt(80),
		Status:     model.OfferPending,
		ProposedBy: buyerID,
		ExpiresAt:  now.Add(24 * time.Hour),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func proposedTrade(tradeID string, productIDs ...string) model.Trade {
	now := time.Now().UTC()
	deadline := now.Add(48 * time.Hour)
	t := model.Trade{
		TradeID:          tradeID,
		TradeNumber:      "TR-20260831-TEST01",
		InitiatorID:      "alice",
		ReceiverID:       "bob",
		Status:           model.TradeProposed,
		ProposedBy:       "alice",
		ResponseDeadline: &deadline,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i, p := range productIDs {
		side := model.SideInitiator
		if i%2 == 1 {
			side = model.SideReceiver
		}
		t.Items = append(t.Items, model.TradeItem{
			ItemID:    "item-" + p,
			TradeID:   tradeID,
			ProductID: p,
			Side:      side,
			Quantity:  1,
			Value:     decimal.NewFromInt(100),
		})
	}
	return t
}

func TestMemoryRepo_OfferVersioning(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1")))

	stored, err := repo.GetOffer("offer1")
	require.NoError(t, err)
	require.Equal(t, int64(1), stored.Version)

	// First update on the current version succeeds and bumps the version.
	stored.Status = model.OfferCountered
	require.NoError(t, repo.UpdateOffer(stored))

	reread, err := repo.GetOffer("offer1")
	require.NoError(t, err)
	require.Equal(t, int64(2), reread.Version)

	// A second update from the stale snapshot must lose.
	stored.Status = model.OfferAccepted
	err = repo.UpdateOffer(stored)
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrConcurrentModification))
}

func TestMemoryRepo_ConcurrentOfferDecisions(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1")))

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			offer, err := repo.GetOffer("offer1")
			if err != nil || !offer.Active() {
				return
			}
			offer.Status = model.OfferAccepted
			if repo.UpdateOffer(offer) == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Every worker saw either the active version 1 or the terminal result.
	// The version check lets exactly one of the version-1 snapshots through.
	require.Equal(t, 1, winners)

	final, err := repo.GetOffer("offer1")
	require.NoError(t, err)
	require.Equal(t, model.OfferAccepted, final.Status)
	require.Equal(t, int64(2), final.Version)
}

func TestMemoryRepo_DuplicateActiveOffer(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1")))

	// Same buyer, same product: rejected while the first offer is active.
	err := repo.InsertOffer(activeOffer("offer2", "prod1", "buyer1"))
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrDuplicateActiveOffer))

	// A different buyer is fine: offers are not exclusive per product.
	require.NoError(t, repo.InsertOffer(activeOffer("offer3", "prod1", "buyer2")))

	// Once the first offer is terminal the same buyer may open a new one.
	first, err := repo.GetOffer("offer1")
	require.NoError(t, err)
	first.Status = model.OfferRejected
	require.NoError(t, repo.UpdateOffer(first))
	require.NoError(t, repo.InsertOffer(activeOffer("offer4", "prod1", "buyer1")))
}

func TestMemoryRepo_TradeLocksBlockOffersAndTrades(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertTrade(proposedTrade("trade1", "prod1", "prod2")))

	locked, err := repo.IsItemLocked("prod1")
	require.NoError(t, err)
	require.True(t, locked)

	// A locked product accepts no new offers.
	err = repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1"))
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrItemLocked))

	// Nor can another trade claim it.
	err = repo.InsertTrade(proposedTrade("trade2", "prod1", "prod9"))
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrItemLocked))

	// Terminal transition releases every lock.
	trade, err := repo.GetTrade("trade1")
	require.NoError(t, err)
	trade.Status = model.TradeCancelled
	require.NoError(t, repo.UpdateTrade(trade, TradeAttachments{}))

	locked, err = repo.IsItemLocked("prod1")
	require.NoError(t, err)
	require.False(t, locked)
	require.NoError(t, repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1")))
}

func TestMemoryRepo_ActiveOfferBlocksTradeProposal(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertOffer(activeOffer("offer1", "prod1", "buyer1")))

	err := repo.InsertTrade(proposedTrade("trade1", "prod1"))
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrItemLocked))

	// Closing the offer clears the way.
	offer, err := repo.GetOffer("offer1")
	require.NoError(t, err)
	offer.Status = model.OfferWithdrawn
	require.NoError(t, repo.UpdateOffer(offer))
	require.NoError(t, repo.InsertTrade(proposedTrade("trade1", "prod1")))
}

func TestMemoryRepo_UpdateTradeSwapsLocks(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	trade := proposedTrade("trade1", "prod1", "prod2")
	require.NoError(t, repo.InsertTrade(trade))

	// Counter with a different item set: old locks released, new ones taken.
	stored, err := repo.GetTrade("trade1")
	require.NoError(t, err)
	stored.Status = model.TradeCountered
	stored.Items = []model.TradeItem{
		{ItemID: "item-prod3", TradeID: "trade1", ProductID: "prod3", Side: model.SideInitiator, Quantity: 1, Value: decimal.NewFromInt(50)},
		{ItemID: "item-prod2", TradeID: "trade1", ProductID: "prod2", Side: model.SideReceiver, Quantity: 1, Value: decimal.NewFromInt(100)},
	}
	require.NoError(t, repo.UpdateTrade(stored, TradeAttachments{}))

	locked, err := repo.IsItemLocked("prod1")
	require.NoError(t, err)
	require.False(t, locked, "dropped item should be unlocked")

	locked, err = repo.IsItemLocked("prod3")
	require.NoError(t, err)
	require.True(t, locked, "swapped-in item should be locked")
}

func TestMemoryRepo_UpdateTradeAttachments(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertTrade(proposedTrade("trade1", "prod1", "prod2")))

	stored, err := repo.GetTrade("trade1")
	require.NoError(t, err)
	stored.Status = model.TradeShippingPending

	payment := model.TradeCashPayment{
		PaymentID:   "pay1",
		TradeID:     "trade1",
		PayerID:     "alice",
		RecipientID: "bob",
		Amount:      decimal.NewFromInt(50),
		Commission:  decimal.RequireFromString("2.5"),
		TotalAmount: decimal.RequireFromString("52.5"),
		Status:      model.PaymentHeld,
	}
	shipments := []model.TradeShipment{
		{ShipmentID: "ship1", TradeID: "trade1", ShipperID: "alice", Status: model.ShipmentNotShipped, Version: 1},
		{ShipmentID: "ship2", TradeID: "trade1", ShipperID: "bob", Status: model.ShipmentNotShipped, Version: 1},
	}

	require.NoError(t, repo.UpdateTrade(stored, TradeAttachments{
		InsertShipments: shipments,
		UpsertPayment:   &payment,
	}))

	gotShips, err := repo.ShipmentsByTrade("trade1")
	require.NoError(t, err)
	require.Len(t, gotShips, 2)

	gotPay, err := repo.PaymentByTrade("trade1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentHeld, gotPay.Status)
	require.True(t, decimal.RequireFromString("52.5").Equal(gotPay.TotalAmount))
}

func TestMemoryRepo_UpdateShipmentVersioning(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	require.NoError(t, repo.InsertTrade(proposedTrade("trade1", "prod1")))

	stored, err := repo.GetTrade("trade1")
	require.NoError(t, err)
	stored.Status = model.TradeShippingPending
	require.NoError(t, repo.UpdateTrade(stored, TradeAttachments{
		InsertShipments: []model.TradeShipment{
			{ShipmentID: "ship1", TradeID: "trade1", ShipperID: "alice", Status: model.ShipmentNotShipped, Version: 1},
		},
	}))

	ships, err := repo.ShipmentsByTrade("trade1")
	require.NoError(t, err)
	ship := ships[0]
	ship.Status = model.ShipmentShipped
	fresh, err := repo.UpdateShipment(ship)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	require.Equal(t, model.ShipmentShipped, fresh[0].Status)

	// Stale snapshot loses.
	ship.Status = model.ShipmentConfirmed
	_, err = repo.UpdateShipment(ship)
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrConcurrentModification))
}

func TestMemoryRepo_DueScans(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	now := time.Now().UTC()

	past := activeOffer("offer1", "prod1", "buyer1")
	past.ExpiresAt = now.Add(-time.Hour)
	require.NoError(t, repo.InsertOffer(past))

	future := activeOffer("offer2", "prod2", "buyer1")
	require.NoError(t, repo.InsertOffer(future))

	due, err := repo.DueOffers(now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "offer1", due[0].OfferID)

	overdue := proposedTrade("trade1", "prod3")
	pastDeadline := now.Add(-time.Minute)
	overdue.ResponseDeadline = &pastDeadline
	require.NoError(t, repo.InsertTrade(overdue))

	disputed := proposedTrade("trade2", "prod4")
	disputed.Status = model.TradeDisputed
	disputed.ResponseDeadline = &pastDeadline
	require.NoError(t, repo.InsertTrade(disputed))

	dueTrades, err := repo.DueTrades(now)
	require.NoError(t, err)
	require.Len(t, dueTrades, 1, "disputed trades are frozen and never due")
	require.Equal(t, "trade1", dueTrades[0].TradeID)
}

func TestMemoryRepo_ListPagination(t *testing.T) {
	t.Parallel()

	repo := NewMemoryRepo()
	base := time.Now().UTC()

	for i, id := range []string{"offer1", "offer2", "offer3"} {
		o := activeOffer(id, "prod"+id, "buyer1")
		o.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.InsertOffer(o))
	}

	newestFirst, err := repo.ListOffersByUser("buyer1", 2, 0)
	require.NoError(t, err)
	require.Len(t, newestFirst, 2)
	require.Equal(t, "offer3", newestFirst[0].OfferID)
	require.Equal(t, "offer2", newestFirst[1].OfferID)

	rest, err := repo.ListOffersByUser("buyer1", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "offer1", rest[0].OfferID)

	beyond, err := repo.ListOffersByUser("buyer1", 2, 10)
	require.NoError(t, err)
	require.Empty(t, beyond)

	none, err := repo.ListOffersByUser("stranger", 10, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}
