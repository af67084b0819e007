// Package app wires the storage backend, the feature services and their HTTP handlers.
// Both the API server and the ordersctl tool build on it.
package app

import (
	"fmt"

	"storefront-checkout/internal/core/config"
	"storefront-checkout/internal/core/storage"
	cartadapters "storefront-checkout/internal/features/cart/adapters"
	carthandler "storefront-checkout/internal/features/cart/handler"
	cartservice "storefront-checkout/internal/features/cart/service"
	catalogadapters "storefront-checkout/internal/features/catalog/adapters"
	cataloghandler "storefront-checkout/internal/features/catalog/handler"
	catalogservice "storefront-checkout/internal/features/catalog/service"
	checkoutadapters "storefront-checkout/internal/features/checkout/adapters"
	checkouthandler "storefront-checkout/internal/features/checkout/handler"
	checkoutservice "storefront-checkout/internal/features/checkout/service"
	orderadapters "storefront-checkout/internal/features/orders/adapters"
	orderhandler "storefront-checkout/internal/features/orders/handler"
	orderservice "storefront-checkout/internal/features/orders/service"
	paymentadapters "storefront-checkout/internal/features/payments/adapters"
	shippingadapters "storefront-checkout/internal/features/shipping/adapters"
	shippinghandler "storefront-checkout/internal/features/shipping/handler"
	shippingports "storefront-checkout/internal/features/shipping/ports"
	shippingservice "storefront-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router)
}

// App holds the wired services.
type App struct {
	Store storage.Store

	Catalog    *catalogservice.CatalogServiceImpl
	Cart       *cartservice.CartServiceImpl
	Management *orderservice.ManagementServiceImpl
	History    *orderservice.HistoryServiceImpl
	Shipping   *shippingservice.ShippingService
	Checkout   *checkoutservice.CheckoutServiceImpl
}

// New opens the configured store and builds every service on top of it.
func New(cfg *config.AppConfig) (*App, error) {
	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a, err := Wire(cfg, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

// Wire builds the services over an already opened store.
func Wire(cfg *config.AppConfig, store storage.Store) (*App, error) {
	minCost, err := decimal.NewFromString(cfg.Mocks.ShippingMinCost)
	if err != nil {
		return nil, fmt.Errorf("invalid SHIPPING_MIN_COST %q: %w", cfg.Mocks.ShippingMinCost, err)
	}

	catalog := catalogservice.NewCatalogService(catalogadapters.NewKVProductRepository(store), cfg.Mocks.Latency)
	cart := cartservice.NewCartService(cartadapters.NewKVCartRepository(store), catalog)

	customer := orderadapters.NewCustomerHistoryStore(store)
	admin := orderadapters.NewAdminManagementStore(store)
	sync := orderservice.NewSyncEngine(customer, admin)
	repo := orderservice.NewRepository(customer, admin, sync)

	gateway := paymentadapters.NewMockGateway(paymentadapters.MockGatewayConfig{
		Latency:      cfg.Mocks.Latency,
		PixExpiry:    cfg.Mocks.PixExpiry,
		BoletoExpiry: cfg.Mocks.BoletoExpiry,
	})

	shipping := shippingservice.NewShippingService([]shippingports.ShippingProvider{
		shippingadapters.NewCorreiosMockAdapter(minCost, cfg.Mocks.Latency),
	}, cfg.Mocks.ShippingOriginCEP)

	checkout := checkoutservice.NewCheckoutService(
		checkoutadapters.NewKVSessionRepository(store, cfg.Checkout.SessionTTL),
		cart,
		repo,
		catalog,
		gateway,
		checkoutservice.Options{
			AuthorizeCards:  cfg.Checkout.AuthorizeCards,
			ArtifactTimeout: cfg.Checkout.ArtifactTimeout,
			DownloadExpiry:  cfg.Checkout.DownloadExpiry,
			DownloadMax:     cfg.Checkout.DownloadMax,
		},
	)

	return &App{
		Store:      store,
		Catalog:    catalog,
		Cart:       cart,
		Management: orderservice.NewManagementService(customer, admin, repo, sync),
		History:    orderservice.NewHistoryService(customer),
		Shipping:   shipping,
		Checkout:   checkout,
	}, nil
}

// Handlers returns the HTTP handlers of every feature.
func (a *App) Handlers() []RouteRegistrar {
	return []RouteRegistrar{
		cataloghandler.NewCatalogHandler(a.Catalog),
		carthandler.NewCartHandler(a.Cart),
		shippinghandler.NewShippingHandler(a.Shipping),
		checkouthandler.NewCheckoutHandler(a.Checkout),
		orderhandler.NewOrderHandler(a.Management, a.History),
	}
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
