package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/eventengine"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/catalog"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/customer"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/inventory"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/order"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/product"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/features/report"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/handlerutils"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/middlewares"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/relay"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr           string
	DB             *sql.DB
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider

	// KafkaBroker left empty runs without the event relay.
	KafkaBroker string
	KafkaTopic  string

	OrderMaxRetries uint64
	ShutdownTimeout time.Duration
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines to finish before closing shared resources.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

// Run serves the api until SIGINT or SIGTERM, then shuts down gracefully.
func (s *server) Run() error {
	if err := s.prep(); err != nil {
		return err
	}

	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /orders/1/ -> /orders/1
	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	mw := middlewares.NewMiddleware(s.Logger)
	router.Use(mw.RequestLogger)

	router.Mount("/api/v1", s.v1Router(mw)) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%s", s.Addr),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.listenAndServe()
}

func (s *server) listenAndServe() error {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			s.Logger.Info("server started", zap.String("addr", s.srv.Addr))

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			s.Logger.Info("server is gracefully shutting down, waiting for pending requests")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				s.ShutdownTimeout,
			)
			defer cancel()

			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	serveErr := errGrp.Wait()
	if serveErr == nil {
		s.Logger.Info("all pending requests completed")
	}

	s.Logger.Info("waiting for internal go routines")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	s.Logger.Info("all internal go routines are done")

	if err := s.DB.Close(); err != nil {
		s.Logger.Error("server failed to close db for shutdown", zap.Error(err))
	}

	s.Logger.Info("server has been shutdown")
	return serveErr
}

// prep starts the event engine and everything that consumes its events.
func (s *server) prep() error {
	var err error

	s.eventEngine, err = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			Logger:        s.Logger.Named("eventengine"),
		},
	)
	if err != nil {
		return err
	}

	productStore := product.NewStore(s.DB)

	// stock journal
	_, err = inventory.NewEventHandler(&inventory.HandlerEventsConfig{
		InternalSrvWG: s.internalSrvWG,
		EventEngine:   s.eventEngine,
		Service:       inventory.NewService(inventory.NewStore(s.DB), productStore),
		Logger:        s.Logger.Named("inventory"),
	})
	if err != nil {
		return err
	}

	if s.KafkaBroker == "" {
		s.Logger.Info("no kafka broker configured, event relay disabled")
		return nil
	}

	writer, err := relay.NewKafkaWriter(s.KafkaBroker, s.KafkaTopic, s.TracerProvider)
	if err != nil {
		return err
	}

	return relay.Start(&relay.Config{
		InternalSrvWG: s.internalSrvWG,
		EventEngine:   s.eventEngine,
		Writer:        writer,
		Logger:        s.Logger.Named("relay"),
	})
}

func (s *server) v1Router(mw handlerMiddleware) *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", mw.ErrorHandler(s.healthHandler))

	// catalog feature
	catalogStore := catalog.NewStore(s.DB)
	catalogHandler := catalog.NewHandler(
		catalog.NewService(catalogStore),
		mw,
	)
	catalogHandler.RegisterRoutes(r)

	// products feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(
		productStore,
		catalogStore,
		s.eventEngine,
		s.Logger.Named("product"),
	)
	productHandler := product.NewHandler(
		productService,
		mw,
	)
	productHandler.RegisterRoutes(r)

	// stock journal reads
	inventoryHandler := inventory.NewHandler(
		inventory.NewService(inventory.NewStore(s.DB), productStore),
		mw,
	)
	inventoryHandler.RegisterRoutes(r)

	// orders feature
	orderService := order.NewService(&order.ServiceConfig{
		Store:      order.NewStore(s.DB),
		Products:   productStore,
		Transactor: storage.NewTransactor(s.DB),
		Publisher:  s.eventEngine,
		Logger:     s.Logger.Named("order"),
		MaxRetries: s.OrderMaxRetries,
	})
	orderHandler := order.NewHandler(
		orderService,
		mw,
	)
	orderHandler.RegisterRoutes(r)

	// customers feature
	customerHandler := customer.NewHandler(
		customer.NewService(customer.NewStore(s.DB)),
		mw,
	)
	customerHandler.RegisterRoutes(r)

	// reports feature
	reportHandler := report.NewHandler(
		report.NewService(report.NewStore(s.DB)),
		mw,
	)
	reportHandler.RegisterRoutes(r)

	return r
}

type handlerMiddleware interface {
	ErrorHandler(h handlerutils.APIHandler) http.HandlerFunc
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	return handlerutils.WriteSuccessJSON(w, http.StatusOK, "OK", nil)
}
