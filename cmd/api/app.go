package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/config"
	"github.com/petgroom/petgroom-api/internal/domain/admin"
	"github.com/petgroom/petgroom-api/internal/domain/booking"
	"github.com/petgroom/petgroom-api/internal/domain/contact"
	"github.com/petgroom/petgroom-api/internal/domain/gallery"
	"github.com/petgroom/petgroom-api/internal/domain/product"
	"github.com/petgroom/petgroom-api/internal/middleware"
	"github.com/petgroom/petgroom-api/internal/pkg/database"
	"github.com/petgroom/petgroom-api/internal/pkg/imaging"
	"github.com/petgroom/petgroom-api/internal/pkg/jwt"
	"github.com/petgroom/petgroom-api/internal/pkg/metrics"
	pkgresponse "github.com/petgroom/petgroom-api/internal/pkg/response"
	"github.com/petgroom/petgroom-api/internal/pkg/storage"
)

// app holds everything the HTTP server needs
type app struct {
	cfg *config.Config
	db  *sqlx.DB
	rdb *redis.Client

	hub     *booking.Hub
	mirror  *gallery.Mirror
	store   storage.Storage
	limiter middleware.RateLimiter

	bookingHandler *booking.Handler
	adminHandler   *admin.Handler
	galleryHandler *gallery.Handler
	contactHandler *contact.Handler
	productHandler *product.Handler
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	if db != nil {
		if err := database.EnsureSchema(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
	}

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.rdb = rdb

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	// ---------- Repositories ----------
	var (
		bookingRepo booking.Repository
		adminRepo   admin.Repository
		galleryRepo gallery.Repository
		contactRepo contact.Repository
		productRepo product.Repository
	)
	if db == nil {
		bookingRepo = booking.NewMemoryRepository()
		adminRepo = admin.NewMemoryRepository()
		galleryRepo = gallery.NewMemoryRepository()
		contactRepo = contact.NewMemoryRepository()
		productRepo = product.NewMemoryRepository()
	} else {
		bookingRepo = booking.NewRepository(db)
		adminRepo = admin.NewRepository(db)
		galleryRepo = gallery.NewRepository(db)
		contactRepo = contact.NewRepository(db)
		productRepo = product.NewRepository(db)
	}

	// ---------- Redis-backed helpers, in-process without Redis ----------
	var (
		revoked admin.RevocationStore  = admin.NewMemoryRevocationStore()
		locker  booking.SlotLocker     = booking.NewLocalSlotLocker()
		limiter middleware.RateLimiter = middleware.NewLocalRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	)
	if rdb != nil {
		revoked = admin.NewRedisRevocationStore(rdb)
		locker = booking.NewRedisSlotLocker(rdb)
		limiter = middleware.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
	}
	a.limiter = limiter

	// ---------- Gallery storage ----------
	store, err := storage.New(ctx, storage.Config{
		Driver:       cfg.UploadDriver,
		LocalDir:     cfg.UploadDir,
		LocalBaseURL: cfg.UploadBaseURL,
		S3Endpoint:   cfg.S3Endpoint,
		S3Region:     cfg.S3Region,
		S3Bucket:     cfg.S3Bucket,
		S3AccessKey:  cfg.S3AccessKey,
		S3SecretKey:  cfg.S3SecretKey,
		S3PublicURL:  cfg.S3PublicURL,
	})
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.UploadDriver).Msg("Gallery storage unavailable, uploads disabled")
	} else {
		a.store = store
	}
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Services ----------
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.AdminSessionTTL)
	adminService := admin.NewService(adminRepo, jwtService, revoked)
	if err := adminService.EnsureDefaultAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensure default admin: %w", err)
	}

	a.hub = booking.NewHub(rdb)
	bookingService := booking.NewService(bookingRepo, a.hub, locker, cfg.EnforceSlots)

	galleryService := gallery.NewService(galleryRepo, a.store, processor)
	if rdb != nil {
		galleryService.NotifyMirror(rdb)
	}
	if cfg.MirrorEnabled && a.store != nil {
		a.mirror = gallery.NewMirror(galleryRepo, a.store, processor)
	}

	contactService := contact.NewService(contactRepo)
	productService := product.NewService(productRepo)

	if cfg.SeedDefaults {
		if err := galleryService.SeedDefaults(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("seed gallery: %w", err)
		}
		if err := productService.SeedDefaults(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("seed products: %w", err)
		}
	}

	// ---------- Handlers ----------
	a.bookingHandler = booking.NewHandler(bookingService, a.hub, cfg.AllowedOrigins)
	a.adminHandler = admin.NewHandler(adminService, cfg.IsProduction())
	a.galleryHandler = gallery.NewHandler(galleryService)
	a.contactHandler = contact.NewHandler(contactService)
	a.productHandler = product.NewHandler(productService)

	return a, nil
}

// Start launches the background workers; they stop when ctx is done
func (a *app) Start(ctx context.Context) {
	go a.hub.Run()
	go func() {
		<-ctx.Done()
		a.hub.Stop()
	}()

	if a.mirror != nil {
		wake := make(chan struct{}, 1)
		if a.rdb != nil {
			go gallery.SubscribeWakeups(ctx, a.rdb, wake)
		}
		go a.mirror.Run(ctx, a.cfg.MirrorInterval, wake)
	}
}

// Router builds the HTTP routes
func (a *app) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	if a.cfg.MetricsEnabled {
		r.Use(middleware.Metrics)
	}
	r.Use(middleware.CORSHandler(a.cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if a.cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// locally stored gallery files
	if local, ok := a.store.(*storage.LocalStorage); ok && strings.HasPrefix(a.cfg.UploadBaseURL, "/") {
		prefix := strings.TrimRight(a.cfg.UploadBaseURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.BasePath()))))
	}

	requireAdmin := a.adminHandler.RequireAdmin()

	r.Route("/api", func(r chi.Router) {
		r.Mount("/bookings", a.bookingHandler.Routes(requireAdmin, middleware.RateLimit(a.limiter, "bookings")))

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/", a.adminHandler.Routes())
			r.With(requireAdmin).Mount("/bookings", a.bookingHandler.AdminRoutes())
		})

		r.Mount("/gallery", a.galleryHandler.Routes(requireAdmin))
		r.Mount("/contacts", a.contactHandler.Routes(requireAdmin, middleware.RateLimit(a.limiter, "contacts")))
		r.Mount("/products", a.productHandler.Routes(requireAdmin))
	})

	return r
}

// Close releases connections
func (a *app) Close() {
	database.Close(a.db)
	database.CloseRedis(a.rdb)
}
