package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/furniture-db/internal/domain/catalog"
	"github.com/Spok95/furniture-db/internal/domain/materials"
	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/products"
	"github.com/Spok95/furniture-db/internal/domain/reports"
	"github.com/Spok95/furniture-db/internal/export"
	"github.com/Spok95/furniture-db/internal/infra/metrics"
	"github.com/Spok95/furniture-db/internal/inventory"
)

// Store: операции inventory.Manager, которые нужны обработчикам.
type Store interface {
	Ping(ctx context.Context) error

	ListProducts(ctx context.Context, limit int) ([]products.View, error)
	SearchProducts(ctx context.Context, term string) ([]products.View, error)
	GetProduct(ctx context.Context, id int64) (*products.Product, error)
	AddProduct(ctx context.Context, in products.NewProduct) (int64, error)
	UpdateProduct(ctx context.Context, id int64, ch products.Changes) error
	DeleteProduct(ctx context.Context, id int64) error
	ProductWorkshops(ctx context.Context, productID int64) ([]production.Assignment, error)
	ProductionTime(ctx context.Context, productID int64) (production.Time, error)

	ListProductTypes(ctx context.Context) ([]catalog.ProductType, error)
	ListMaterialTypes(ctx context.Context) ([]materials.MaterialType, error)
	ListWorkshops(ctx context.Context) ([]catalog.Workshop, error)
	CalculateMaterial(ctx context.Context, req materials.CalcRequest) (materials.CalcResult, error)

	Statistics(ctx context.Context) (reports.Statistics, error)
	ProductsByType(ctx context.Context) ([]reports.TypeCount, error)
	AveragePriceByType(ctx context.Context) ([]reports.TypeAverage, error)
	TopExpensiveProducts(ctx context.Context, n int) ([]reports.PricedProduct, error)
	ProductsWithWorkshops(ctx context.Context) ([]production.ProductWorkshop, error)

	Rows(ctx context.Context, d inventory.Dataset) ([]export.Row, error)
}

var _ Store = (*inventory.Manager)(nil)

type Options struct {
	Addr           string
	ExposeMetrics  bool
	RequestTimeout time.Duration
	Log            *slog.Logger
	Metrics        *metrics.Metrics
}

type Server struct {
	store   Store
	log     *slog.Logger
	metrics *metrics.Metrics
	router  *chi.Mux
	srv     *http.Server
}

func New(store Store, opts Options) *Server {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	s := &Server{
		store:   store,
		log:     opts.Log,
		metrics: opts.Metrics,
		router:  chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(opts.RequestTimeout))

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	s.router.Get("/ready", s.handleReady)

	if opts.ExposeMetrics {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.handleStats)

		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleAddProduct)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Patch("/products/{id}", s.handleUpdateProduct)
		r.Delete("/products/{id}", s.handleDeleteProduct)
		r.Get("/products/{id}/workshops", s.handleProductWorkshops)
		r.Get("/products/{id}/production-time", s.handleProductionTime)

		r.Post("/calculate-material", s.handleCalculateMaterial)

		r.Get("/product-types", s.handleProductTypes)
		r.Get("/material-types", s.handleMaterialTypes)
		r.Get("/workshops", s.handleWorkshops)

		r.Get("/analytics/by-type", s.handleByType)
		r.Get("/analytics/average-price", s.handleAveragePrice)
		r.Get("/analytics/top", s.handleTop)
		r.Get("/analytics/product-workshops", s.handleProductsWorkshops)

		r.Get("/export/{dataset}", s.handleExport)
	})

	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler: корневой обработчик, в тестах используется вместо сети.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.log.Info("http server started", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// observe пишет строку лога и счётчик на каждый запрос.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		s.metrics.ObserveHTTP(r.Method, route, strconv.Itoa(status))

		logger := s.requestLog(r)
		logger.Info("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}
