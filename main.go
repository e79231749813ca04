package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"swapmarket/internal/config"
	"swapmarket/internal/gateway"
	"swapmarket/internal/gateway/paymentclient"
	model "swapmarket/internal/models"
	offer "swapmarket/internal/offerService"
	"swapmarket/internal/repository"
	"swapmarket/internal/repository/gormstore"
	"swapmarket/internal/scheduler"
	"swapmarket/internal/server"
	trade "swapmarket/internal/tradeService"
	"swapmarket/utils"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.Logger.Level)

	repo, err := openStore(cfg.Database)
	if err != nil {
		utils.Fatal("failed to open store", map[string]any{"dsn": cfg.Database.DSN, "error": err.Error()})
	}

	catalog := gateway.NewStaticCatalog()
	prepopulateListings(catalog)

	var payment gateway.Payment
	if cfg.Payment.BaseURL != "" {
		payment = paymentclient.NewClient(&cfg.Payment)
	} else {
		payment = gateway.NewLocalEscrow()
	}
	notifier := gateway.LogNotifier{}
	orders := gateway.LogOrders{}

	offerSvc := offer.NewOfferService(repo, catalog, orders, notifier, &cfg.Negotiation)
	tradeSvc := trade.NewTradeService(repo, catalog, payment, notifier, &cfg.Negotiation)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(offerSvc, tradeSvc, cfg.Scheduler.TickInterval)
	go sched.Run(ctx)

	router := server.SetupRouter(offerSvc, tradeSvc)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("Starting marketplace server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore selects the storage backend; an empty DSN keeps everything in memory.
func openStore(db config.Database) (repository.MarketDB, error) {
	if db.DSN == "" {
		return repository.NewMemoryRepo(), nil
	}
	return gormstore.NewStore(db.DSN)
}

// prepopulateListings adds sample products to the local catalog
func prepopulateListings(catalog *gateway.StaticCatalog) {
	products := []model.Product{
		{ProductID: "prod1", OwnerID: "alice", Title: "Mechanical keyboard", Price: decimal.NewFromInt(100), Status: model.ProductActive},
		{ProductID: "prod2", OwnerID: "alice", Title: "Vintage camera", Price: decimal.NewFromInt(250), Status: model.ProductActive},
		{ProductID: "prod3", OwnerID: "bob", Title: "Record player", Price: decimal.NewFromInt(180), Status: model.ProductActive},
	}

	for _, p := range products {
		catalog.AddListing(p)
	}
}
