package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	model "swapmarket/internal/models"
	offer "swapmarket/internal/offerService"
	"swapmarket/internal/repository"
	"swapmarket/internal/server"
	trade "swapmarket/internal/tradeService"
)

// testEnv bundles the full stack wired against in-process collaborators.
type testEnv struct {
	Router  *gin.Engine
	Repo    *repository.MemoryRepo
	Catalog *gateway.StaticCatalog
	Escrow  *gateway.LocalEscrow
}

func testNegotiation() *config.Negotiation {
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

// SetupTestEnv initializes the router with the in-memory store and seeds the
// catalog with the given listings.
func SetupTestEnv(listings ...model.Product) *testEnv {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	catalog := gateway.NewStaticCatalog()
	escrow := gateway.NewLocalEscrow()

	for _, l := range listings {
		catalog.AddListing(l)
	}

	cfg := testNegotiation()
	offerSvc := offer.NewOfferService(repo, catalog, gateway.LogOrders{}, gateway.LogNotifier{}, cfg)
	tradeSvc := trade.NewTradeService(repo, catalog, escrow, gateway.LogNotifier{}, cfg)

	return &testEnv{
		Router:  server.SetupRouter(offerSvc, tradeSvc),
		Repo:    repo,
		Catalog: catalog,
		Escrow:  escrow,
	}
}

func product(productID, ownerID string, price int64) model.Product {
	return model.Product{
		ProductID: productID,
		OwnerID:   ownerID,
		Title:     "listing " + productID,
		Price:     decimal.NewFromInt(price),
		Status:    model.ProductActive,
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the response envelope, returning its data payload when present.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if data, ok := resp["data"].(map[string]any); ok && w.Code < 300 {
			return data, w
		}
	}
	return resp, w
}
