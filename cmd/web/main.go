package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Enthunya/mekgoro-tbos/internal/config"
	"github.com/Enthunya/mekgoro-tbos/internal/logger"
	"github.com/Enthunya/mekgoro-tbos/internal/metrics"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/account"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/auth"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/credit"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/dashboard"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/help"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/sales"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/session"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/shop"
	"github.com/Enthunya/mekgoro-tbos/internal/modules/stock"
	"github.com/Enthunya/mekgoro-tbos/internal/ui"
	"github.com/Enthunya/mekgoro-tbos/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	router, err := newRouter(cfg, log, metrics.New())
	if err != nil {
		log.WithError(err).Fatal("building router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()
	log.WithFields(logrus.Fields{"port": cfg.Port, "api_url": cfg.APIURL}).Info("Mekgoro Daily starting")

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("field", "server").Error(err)
		}
	}
}

func newRouter(cfg config.AppConfig, log *logrus.Logger, reg *metrics.Registry) (http.Handler, error) {
	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}
	client := backend.NewClient(cfg.APIURL, cfg.APITimeout, log, reg)
	validate := validation.New()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(reg.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Method(http.MethodGet, "/metrics", reg.Handler())

	// ── Session & Screens ───────────────────────────────────
	store := session.NewStore(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies)
	dash := dashboard.New(store, renderer, log, cfg.SupportWhatsApp)
	dash.RegisterRoutes(router)

	// ── Login & Trial Signup ────────────────────────────────
	shopService := shop.NewService(shop.NewAPIRepository(client), validate)
	auth.NewHandler(shopService, dash, log).RegisterRoutes(router)

	// ── Daily Entry & Weekly Summary ────────────────────────
	salesService := sales.NewService(sales.NewAPIRepository(client), validate)
	sales.NewHandler(salesService, dash, log).RegisterRoutes(router)

	// ── Stock & Credit ──────────────────────────────────────
	stockSource := stock.NewFixtureSource()
	if cfg.StockSource == config.SourceBackend {
		stockSource = stock.NewAPISource(client)
	}
	stock.NewHandler(stock.NewService(stockSource, validate), dash, log).RegisterRoutes(router)

	creditSource := credit.NewFixtureSource()
	if cfg.CreditSource == config.SourceBackend {
		creditSource = credit.NewAPISource(client)
	}
	creditService := credit.NewService(creditSource, credit.NewWhatsAppNotifier(cfg.PhoneRegion), validate, log)
	credit.NewHandler(creditService, dash, log).RegisterRoutes(router)

	// ── Account & Help ──────────────────────────────────────
	gateways := account.GatewayRegistry{
		account.ProviderInstantEFT: account.NewInstantEFTGateway(cfg.PaymentGatewayURL),
	}
	bank := account.BankDetails{Name: cfg.BankName, Account: cfg.BankAccount, Branch: cfg.BankBranch}
	accountService := account.NewService(bank, gateways, cfg.SupportWhatsApp, cfg.PhoneRegion)
	account.NewHandler(accountService, dash, log).RegisterRoutes(router)

	help.NewHandler(dash, cfg.PhoneRegion).RegisterRoutes(router)

	if err := dash.Validate(); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"stock_source": cfg.StockSource, "credit_source": cfg.CreditSource}).Info("screens mounted")
	return router, nil
}
