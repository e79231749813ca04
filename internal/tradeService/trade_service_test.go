package trade

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	"swapmarket/internal/marketerrors"
	model "swapmarket/internal/models"
	"swapmarket/internal/repository"
)

func testConfig() *config.Negotiation {
	return &config.Negotiation{
		CommissionRate:   0.05,
		MinOfferFraction: 0.5,
		OfferWindow:      24 * time.Hour,
		ResponseWindow:   48 * time.Hour,
		PaymentWindow:    24 * time.Hour,
		ShippingWindow:   5 * 24 * time.Hour,
		ConfirmWindow:    7 * 24 * time.Hour,
		DefaultPageSize:  20,
	}
}

type fixture struct {
	repo    *repository.MemoryRepo
	catalog *gateway.StaticCatalog
	service *TradeService
}

// newFixture wires the service against the real in-memory store and catalog so
// the lock and version semantics are exercised for real, with the payment
// gateway injectable per test.
func newFixture(payment gateway.Payment) *fixture {
	repo := repository.NewMemoryRepo()
	catalog := gateway.NewStaticCatalog()

	catalog.AddListing(model.Product{ProductID: "prod-a1", OwnerID: "alice", Title: "keyboard", Price: decimal.NewFromInt(100), Status: model.ProductActive})
	catalog.AddListing(model.Product{ProductID: "prod-a2", OwnerID: "alice", Title: "camera", Price: decimal.NewFromInt(250), Status: model.ProductActive})
	catalog.AddListing(model.Product{ProductID: "prod-b1", OwnerID: "bob", Title: "record player", Price: decimal.NewFromInt(180), Status: model.ProductActive})
	catalog.AddListing(model.Product{ProductID: "prod-b2", OwnerID: "bob", Title: "amp", Price: decimal.NewFromInt(90), Status: model.ProductActive})
	catalog.AddListing(model.Product{ProductID: "prod-sold", OwnerID: "bob", Title: "gone", Price: decimal.NewFromInt(10), Status: model.ProductInactive})

	return &fixture{
		repo:    repo,
		catalog: catalog,
		service: NewTradeService(repo, catalog, payment, gateway.LogNotifier{}, testConfig()),
	}
}

func barterInput(cash string, payerID string) ProposeInput {
	in := ProposeInput{
		InitiatorID:    "alice",
		ReceiverID:     "bob",
		InitiatorItems: []ItemInput{{ProductID: "prod-a1", Quantity: 1}},
		ReceiverItems:  []ItemInput{{ProductID: "prod-b1", Quantity: 1}},
		Message:        "fancy a swap?",
	}
	if cash != "" {
		in.CashAmount = decimal.RequireFromString(cash)
		in.CashPayerID = payerID
	}
	return in
}

// forceDeadline rewrites a deadline directly in the store, simulating the
// passage of time without sleeping.
func forceDeadline(t *testing.T, repo *repository.MemoryRepo, tradeID string, set func(*model.Trade, time.Time)) {
	t.Helper()
	trade, err := repo.GetTrade(tradeID)
	require.NoError(t, err)
	set(&trade, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, repo.UpdateTrade(trade, repository.TradeAttachments{}))
}

// Tests ProposeTrade
func TestTradeService_ProposeTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid_barter_with_cash_leg", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)

		require.Equal(t, model.TradeProposed, trade.Status)
		require.Equal(t, "alice", trade.ProposedBy)
		require.Regexp(t, regexp.MustCompile(`^TR-\d{8}-[0-9A-F]{6}$`), trade.TradeNumber)
		require.NotNil(t, trade.ResponseDeadline)
		require.WithinDuration(t, time.Now().UTC().Add(48*time.Hour), *trade.ResponseDeadline, 2*time.Second)

		// Listing values and the commission are frozen at proposal time.
		require.Len(t, trade.Items, 2)
		require.True(t, decimal.NewFromInt(100).Equal(trade.Items[0].Value))
		require.True(t, decimal.NewFromInt(180).Equal(trade.Items[1].Value))
		require.True(t, decimal.RequireFromString("2.5").Equal(trade.CashCommission))

		// Both products are locked for the life of the negotiation.
		for _, p := range []string{"prod-a1", "prod-b1"} {
			locked, err := f.repo.IsItemLocked(p)
			require.NoError(t, err)
			require.True(t, locked)
		}
	})

	t.Run("frozen_value_survives_price_change", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		f.catalog.AddListing(model.Product{ProductID: "prod-a1", OwnerID: "alice", Title: "keyboard", Price: decimal.NewFromInt(999), Status: model.ProductActive})

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(100).Equal(stored.Items[0].Value))
	})

	t.Run("validation_failures", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		tests := []struct {
			name   string
			mutate func(*ProposeInput)
		}{
			{name: "self_trade", mutate: func(in *ProposeInput) { in.ReceiverID = "alice" }},
			{name: "no_items", mutate: func(in *ProposeInput) { in.InitiatorItems = nil; in.ReceiverItems = nil }},
			{name: "negative_cash", mutate: func(in *ProposeInput) { in.CashAmount = decimal.NewFromInt(-5); in.CashPayerID = "alice" }},
			{name: "cash_payer_not_participant", mutate: func(in *ProposeInput) { in.CashAmount = decimal.NewFromInt(5); in.CashPayerID = "mallory" }},
			{name: "payer_without_cash", mutate: func(in *ProposeInput) { in.CashPayerID = "alice" }},
			{name: "zero_quantity", mutate: func(in *ProposeInput) { in.InitiatorItems[0].Quantity = 0 }},
			{name: "item_not_owned_by_side", mutate: func(in *ProposeInput) { in.InitiatorItems[0].ProductID = "prod-b2" }},
			{name: "inactive_item", mutate: func(in *ProposeInput) { in.ReceiverItems[0].ProductID = "prod-sold" }},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				in := barterInput("", "")
				tc.mutate(&in)

				_, err := f.service.ProposeTrade(ctx, in)
				require.Error(t, err)
				require.True(t, errors.Is(err, marketerrors.ErrValidation), "expected validation error, got: %v", err)
			})
		}
	})

	t.Run("locked_item_blocks_second_trade", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		_, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		second := barterInput("", "")
		second.ReceiverItems = []ItemInput{{ProductID: "prod-b2", Quantity: 1}}
		_, err = f.service.ProposeTrade(ctx, second)
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrItemLocked))
	})

	t.Run("active_offer_blocks_trade", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		require.NoError(t, f.repo.InsertOffer(model.Offer{
			OfferID:    "offer1",
			ProductID:  "prod-b1",
			BuyerID:    "carol",
			SellerID:   "bob",
			Amount:     decimal.NewFromInt(150),
			Status:     model.OfferPending,
			ProposedBy: "carol",
			ExpiresAt:  time.Now().UTC().Add(time.Hour),
		}))

		_, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrItemLocked))
	})
}

// Tests RespondToTrade
func TestTradeService_RespondToTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("receiver_rejects", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionReject, "not interested", nil)
		require.NoError(t, err)
		require.Equal(t, model.TradeRejected, trade.Status)

		// Rejection releases the item locks.
		locked, err := f.repo.IsItemLocked("prod-a1")
		require.NoError(t, err)
		require.False(t, locked)
	})

	t.Run("counter_swaps_items_and_flips_turn", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionCounter, "throw in the camera", &CounterInput{
			InitiatorItems: []ItemInput{{ProductID: "prod-a1", Quantity: 1}, {ProductID: "prod-a2", Quantity: 1}},
			ReceiverItems:  []ItemInput{{ProductID: "prod-b1", Quantity: 1}},
		})
		require.NoError(t, err)
		require.Equal(t, model.TradeCountered, trade.Status)
		require.Equal(t, "bob", trade.ProposedBy)
		require.Len(t, trade.Items, 3)

		locked, err := f.repo.IsItemLocked("prod-a2")
		require.NoError(t, err)
		require.True(t, locked, "swapped-in item must be locked")

		// Now it is alice's turn; bob cannot respond to his own counter.
		_, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized))

		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "alice", ActionAccept, "", nil)
		require.NoError(t, err)
		require.Equal(t, model.TradeShippingPending, trade.Status)
	})

	t.Run("accept_without_cash_goes_straight_to_shipping", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)
		require.Equal(t, model.TradeShippingPending, trade.Status)
		require.NotNil(t, trade.ShippingDeadline)
		require.NotNil(t, trade.AcceptedAt)

		shipments, err := f.repo.ShipmentsByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Len(t, shipments, 2)
		for _, sh := range shipments {
			require.Equal(t, model.ShipmentNotShipped, sh.Status)
		}
	})

	t.Run("accept_with_cash_waits_for_payment", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)

		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)
		require.Equal(t, model.TradePaymentPending, trade.Status)
		require.NotNil(t, trade.PaymentDeadline)

		// No shipments exist until the cash leg clears.
		_, err = f.repo.ShipmentsByTrade(trade.TradeID)
		require.Error(t, err)
	})

	t.Run("counter_requires_replacement_proposal", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		_, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionCounter, "", nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrValidation))
	})

	t.Run("unknown_action", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		_, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", "ponder", "", nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrValidation))
	})

	t.Run("response_deadline_expires_on_read", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		forceDeadline(t, f.repo, trade.TradeID, func(tr *model.Trade, past time.Time) {
			tr.ResponseDeadline = &past
		})

		_, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrExpired))

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeExpired, stored.Status)
	})
}

// Tests RecordCashPayment
func TestTradeService_RecordCashPayment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	acceptWithCash := func(t *testing.T, f *fixture) model.Trade {
		t.Helper()
		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)
		return trade
	}

	t.Run("hold_capture_and_advance", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)
		trade := acceptWithCash(t, f)

		// The payer is charged the cash leg plus the frozen commission.
		mockPayment.EXPECT().
			HoldFunds(gomock.Any(), "alice", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, total decimal.Decimal) (string, error) {
				require.True(t, decimal.RequireFromString("52.5").Equal(total), "expected 52.5, got %s", total)
				return "hold-1", nil
			})
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)

		trade, err := f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)
		require.Equal(t, model.TradeShippingPending, trade.Status)

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentHeld, payment.Status)
		require.Equal(t, "hold-1", payment.HoldID)
		require.Equal(t, "bob", payment.RecipientID)

		shipments, err := f.repo.ShipmentsByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Len(t, shipments, 2)
	})

	t.Run("capture_failure_keeps_trade_in_payment_pending", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)
		trade := acceptWithCash(t, f)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(marketerrors.ErrDependencyFailure)

		_, err := f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrDependencyFailure))

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradePaymentPending, stored.Status, "a gateway failure must not advance the trade")
		_, err = f.repo.ShipmentsByTrade(trade.TradeID)
		require.Error(t, err)
	})

	t.Run("only_the_designated_payer_may_pay", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptWithCash(t, f)

		_, err := f.service.RecordCashPayment(ctx, trade.TradeID, "bob")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized))
	})

	t.Run("wrong_phase", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)

		_, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrWrongPhase))
	})
}

// acceptedNoCash drives a fixture to shipping_pending without a cash leg.
func acceptedNoCash(t *testing.T, ctx context.Context, f *fixture) model.Trade {
	t.Helper()
	trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
	require.NoError(t, err)
	trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
	require.NoError(t, err)
	return trade
}

// Tests MarkShipped
func TestTradeService_MarkShipped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("second_shipment_advances_to_confirmation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		trade, err := f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.NoError(t, err)
		require.Equal(t, model.TradeShippingPending, trade.Status, "one parcel out is not enough")

		trade, err = f.service.MarkShipped(ctx, trade.TradeID, "bob", "DHL", "JD014")
		require.NoError(t, err)
		require.Equal(t, model.TradeConfirmationPending, trade.Status)
		require.NotNil(t, trade.ConfirmationDeadline)
	})

	t.Run("double_ship_is_rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.NoError(t, err)

		_, err = f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})

	t.Run("carrier_is_required", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.MarkShipped(ctx, trade.TradeID, "alice", "", "1Z999")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrValidation))
	})

	t.Run("stranger_cannot_ship", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.MarkShipped(ctx, trade.TradeID, "mallory", "UPS", "1Z999")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized))
	})
}

// Tests ConfirmReceipt through completion
func TestTradeService_ConfirmReceipt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	shippedBothWays := func(t *testing.T, f *fixture, trade model.Trade) model.Trade {
		t.Helper()
		_, err := f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.NoError(t, err)
		trade, err = f.service.MarkShipped(ctx, trade.TradeID, "bob", "DHL", "JD014")
		require.NoError(t, err)
		return trade
	}

	t.Run("both_confirmations_complete_the_barter", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := shippedBothWays(t, f, acceptedNoCash(t, ctx, f))

		trade2, err := f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.NoError(t, err)
		require.Equal(t, model.TradeConfirmationPending, trade2.Status)

		trade2, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "bob")
		require.NoError(t, err)
		require.Equal(t, model.TradeCompleted, trade2.Status)
		require.NotNil(t, trade2.CompletedAt)

		// Completion releases the item locks.
		locked, err := f.repo.IsItemLocked("prod-a1")
		require.NoError(t, err)
		require.False(t, locked)
	})

	t.Run("completion_releases_the_held_cash", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		trade = shippedBothWays(t, f, trade)

		_, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		mockPayment.EXPECT().ReleaseFunds(gomock.Any(), "hold-1", "bob").Return(nil)
		trade, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "bob")
		require.NoError(t, err)
		require.Equal(t, model.TradeCompleted, trade.Status)

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentReleased, payment.Status)
	})

	t.Run("release_failure_leaves_trade_pending", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		trade = shippedBothWays(t, f, trade)
		_, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		mockPayment.EXPECT().ReleaseFunds(gomock.Any(), "hold-1", "bob").Return(marketerrors.ErrDependencyFailure)
		_, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "bob")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrDependencyFailure))

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeConfirmationPending, stored.Status, "completion must not commit before the payout")

		// A retry once the gateway recovers picks the completion back up.
		mockPayment.EXPECT().ReleaseFunds(gomock.Any(), "hold-1", "bob").Return(nil)
		trade, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "bob")
		require.NoError(t, err)
		require.Equal(t, model.TradeCompleted, trade.Status)
	})

	t.Run("payment_read_failure_aborts_completion", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		trade = shippedBothWays(t, f, trade)
		_, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		// The final confirmation cannot tell whether cash is still held, so
		// it must not complete the trade, and no payout may be attempted.
		broken := NewTradeService(paymentReadError{f.repo}, f.catalog, mockPayment, gateway.LogNotifier{}, testConfig())
		_, err = broken.ConfirmReceipt(ctx, trade.TradeID, "bob")
		require.Error(t, err)

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeConfirmationPending, stored.Status)

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentHeld, payment.Status)
	})

	t.Run("double_confirmation_is_rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := shippedBothWays(t, f, acceptedNoCash(t, ctx, f))

		_, err := f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		_, err = f.service.ConfirmReceipt(ctx, trade.TradeID, "alice")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})
}

// shipmentReadGate holds the first two ShipmentsByTrade callers at a barrier
// so both act on the row set as it was before either of their writes landed.
type shipmentReadGate struct {
	repository.MarketDB
	arrivals sync.WaitGroup
	reads    int32
}

func newShipmentReadGate(db repository.MarketDB) *shipmentReadGate {
	g := &shipmentReadGate{MarketDB: db}
	g.arrivals.Add(2)
	return g
}

func (g *shipmentReadGate) ShipmentsByTrade(tradeID string) ([]model.TradeShipment, error) {
	if atomic.AddInt32(&g.reads, 1) <= 2 {
		g.arrivals.Done()
		g.arrivals.Wait()
	}
	return g.MarketDB.ShipmentsByTrade(tradeID)
}

// paymentReadError fails every payment lookup, simulating an outage confined
// to the payments table.
type paymentReadError struct {
	repository.MarketDB
}

func (paymentReadError) PaymentByTrade(string) (model.TradeCashPayment, error) {
	return model.TradeCashPayment{}, errors.New("payment table unavailable")
}

// Two parties acting at the same instant must still advance the trade exactly
// once: the phase decision has to come from state that includes both writes,
// not from what either party saw before writing.
func TestTradeService_ConcurrentFulfillment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("simultaneous_shipments_advance_the_trade", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		gate := newShipmentReadGate(f.repo)
		gated := NewTradeService(gate, f.catalog, gateway.NewLocalEscrow(), gateway.LogNotifier{}, testConfig())

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = gated.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = gated.MarkShipped(ctx, trade.TradeID, "bob", "DHL", "JD014")
		}()
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeConfirmationPending, stored.Status)
		require.NotNil(t, stored.ConfirmationDeadline)
	})

	t.Run("simultaneous_confirmations_complete_and_pay_out", func(t *testing.T) {
		t.Parallel()
		escrow := gateway.NewLocalEscrow()
		f := newFixture(escrow)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)
		_, err = f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.NoError(t, err)
		_, err = f.service.MarkShipped(ctx, trade.TradeID, "bob", "DHL", "JD014")
		require.NoError(t, err)

		gate := newShipmentReadGate(f.repo)
		gated := NewTradeService(gate, f.catalog, escrow, gateway.LogNotifier{}, testConfig())

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = gated.ConfirmReceipt(ctx, trade.TradeID, "alice")
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = gated.ConfirmReceipt(ctx, trade.TradeID, "bob")
		}()
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeCompleted, stored.Status, "held cash must not strand in escrow")

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentReleased, payment.Status)
	})
}

// Tests RaiseDispute and ResolveDispute
func TestTradeService_Disputes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("raise_freezes_the_trade", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		trade, err := f.service.RaiseDispute(ctx, trade.TradeID, "bob", "damaged item", "the keyboard arrived cracked")
		require.NoError(t, err)
		require.Equal(t, model.TradeDisputed, trade.Status)

		dispute, err := f.repo.DisputeByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, "bob", dispute.RaisedByID)
		require.Equal(t, "damaged item", dispute.Reason)

		// A disputed trade accepts no further fulfillment actions.
		_, err = f.service.MarkShipped(ctx, trade.TradeID, "alice", "UPS", "1Z999")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrWrongPhase))
	})

	t.Run("cannot_dispute_a_negotiation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		_, err = f.service.RaiseDispute(ctx, trade.TradeID, "bob", "changed my mind", "")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})

	t.Run("resolve_complete_finishes_the_trade", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.RaiseDispute(ctx, trade.TradeID, "bob", "late shipment", "")
		require.NoError(t, err)

		trade, err = f.service.ResolveDispute(ctx, trade.TradeID, "seller compensated the delay", OutcomeComplete)
		require.NoError(t, err)
		require.Equal(t, model.TradeCompleted, trade.Status)

		dispute, err := f.repo.DisputeByTrade(trade.TradeID)
		require.NoError(t, err)
		require.NotNil(t, dispute.ResolvedAt)
		require.Equal(t, "seller compensated the delay", dispute.Resolution)
	})

	t.Run("resolve_cancel_refunds_the_held_cash", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		_, err = f.service.RaiseDispute(ctx, trade.TradeID, "alice", "nothing arrived", "")
		require.NoError(t, err)

		mockPayment.EXPECT().RefundFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.ResolveDispute(ctx, trade.TradeID, "receiver never shipped", OutcomeCancel)
		require.NoError(t, err)
		require.Equal(t, model.TradeCancelled, trade.Status)

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentRefunded, payment.Status)
	})

	t.Run("payment_read_failure_aborts_resolution", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockPayment := gateway.NewMockPayment(ctrl)
		f := newFixture(mockPayment)

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		trade, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)

		mockPayment.EXPECT().HoldFunds(gomock.Any(), "alice", gomock.Any()).Return("hold-1", nil)
		mockPayment.EXPECT().CaptureFunds(gomock.Any(), "hold-1").Return(nil)
		trade, err = f.service.RecordCashPayment(ctx, trade.TradeID, "alice")
		require.NoError(t, err)

		_, err = f.service.RaiseDispute(ctx, trade.TradeID, "alice", "nothing arrived", "")
		require.NoError(t, err)

		// If the cancellation cannot tell whether cash is still held, the
		// trade must stay disputed and no refund may be attempted.
		broken := NewTradeService(paymentReadError{f.repo}, f.catalog, mockPayment, gateway.LogNotifier{}, testConfig())
		_, err = broken.ResolveDispute(ctx, trade.TradeID, "receiver never shipped", OutcomeCancel)
		require.Error(t, err)

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeDisputed, stored.Status)

		payment, err := f.repo.PaymentByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.PaymentHeld, payment.Status)
	})

	t.Run("unknown_outcome", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.RaiseDispute(ctx, trade.TradeID, "bob", "late shipment", "")
		require.NoError(t, err)

		_, err = f.service.ResolveDispute(ctx, trade.TradeID, "split the difference", "shrug")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrValidation))
	})
}

// Tests CancelTrade
func TestTradeService_CancelTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("either_party_may_cancel_during_negotiation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)

		trade, err = f.service.CancelTrade(ctx, trade.TradeID, "bob", "found a better deal")
		require.NoError(t, err)
		require.Equal(t, model.TradeCancelled, trade.Status)
		require.Equal(t, "found a better deal", trade.CancelReason)
	})

	t.Run("cannot_cancel_after_acceptance", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())
		trade := acceptedNoCash(t, ctx, f)

		_, err := f.service.CancelTrade(ctx, trade.TradeID, "alice", "changed my mind")
		require.Error(t, err)
		require.True(t, errors.Is(err, marketerrors.ErrInvalidState))
	})
}

// Tests ExpireTrades deadline policy
func TestTradeService_ExpireTrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missed_response_deadline_expires", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("", ""))
		require.NoError(t, err)
		forceDeadline(t, f.repo, trade.TradeID, func(tr *model.Trade, past time.Time) {
			tr.ResponseDeadline = &past
		})

		n, err := f.service.ExpireTrades(time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, 1, n)

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeExpired, stored.Status)

		// Second sweep finds nothing.
		n, err = f.service.ExpireTrades(time.Now().UTC())
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("missed_payment_deadline_cancels", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade, err := f.service.ProposeTrade(ctx, barterInput("50", "alice"))
		require.NoError(t, err)
		_, err = f.service.RespondToTrade(ctx, trade.TradeID, "bob", ActionAccept, "", nil)
		require.NoError(t, err)
		forceDeadline(t, f.repo, trade.TradeID, func(tr *model.Trade, past time.Time) {
			tr.PaymentDeadline = &past
		})

		n, err := f.service.ExpireTrades(time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, 1, n)

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeCancelled, stored.Status)
		require.Equal(t, "payment deadline passed", stored.CancelReason)
	})

	t.Run("missed_shipping_deadline_raises_engine_dispute", func(t *testing.T) {
		t.Parallel()
		f := newFixture(gateway.NewLocalEscrow())

		trade := acceptedNoCash(t, ctx, f)
		forceDeadline(t, f.repo, trade.TradeID, func(tr *model.Trade, past time.Time) {
			tr.ShippingDeadline = &past
		})

		n, err := f.service.ExpireTrades(time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, 1, n)

		stored, err := f.repo.GetTrade(trade.TradeID)
		require.NoError(t, err)
		require.Equal(t, model.TradeDisputed, stored.Status)

		dispute, err := f.repo.DisputeByTrade(trade.TradeID)
		require.NoError(t, err)
		require.Empty(t, dispute.RaisedByID, "an engine-raised dispute has no raising party")
		require.Equal(t, "deadline exceeded", dispute.Reason)
	})
}

// Tests GetTrade visibility and aggregation
func TestTradeService_GetTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(gateway.NewLocalEscrow())
	trade := acceptedNoCash(t, ctx, f)

	detail, err := f.service.GetTrade(trade.TradeID, "alice")
	require.NoError(t, err)
	require.Equal(t, trade.TradeID, detail.Trade.TradeID)
	require.Len(t, detail.Shipments, 2)
	require.Nil(t, detail.Payment)
	require.Nil(t, detail.Dispute)

	_, err = f.service.GetTrade(trade.TradeID, "mallory")
	require.Error(t, err)
	require.True(t, errors.Is(err, marketerrors.ErrNotAuthorized))
}
