// Package server wires the application together: config, database, cache,
// storage, event bus, read/write services, controllers, and the HTTP stack.
// Everything is constructed here and injected; no package below this one
// reaches for a global connection.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/portostore/portostore/app/catalog"
	"github.com/portostore/portostore/app/controllers"
	"github.com/portostore/portostore/app/routes"
	"github.com/portostore/portostore/config"
	"github.com/portostore/portostore/pkg/cache"
	"github.com/portostore/portostore/pkg/database"
	"github.com/portostore/portostore/pkg/event"
	gql "github.com/portostore/portostore/pkg/graphql"
	"github.com/portostore/portostore/pkg/logger"
	"github.com/portostore/portostore/pkg/metrics"
	"github.com/portostore/portostore/pkg/middleware"
	"github.com/portostore/portostore/pkg/reqid"
	"github.com/portostore/portostore/pkg/router"
	"github.com/portostore/portostore/pkg/storage"
	"github.com/portostore/portostore/pkg/ws"
)

// Server is the wired application.
type Server struct {
	db     *gorm.DB
	cache  *cache.Cache
	hub    *ws.Hub
	router *router.Router

	mongoLog *logger.MongoHandler
}

// New builds the full dependency graph.
func New() (*Server, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	var mongoLog *logger.MongoHandler
	if uri := config.MongoLogURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.MongoLogDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			mongoLog = mh
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		}
	}

	db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return nil, err
	}

	c, err := cache.Connect(config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, read views uncached", "error", err)
	}

	disk, err := buildDisk()
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	hub := ws.NewHub()
	hub.Attach(bus,
		catalog.EventProductCreated,
		catalog.EventProductUpdated,
		catalog.EventCategoryCreated,
	)
	go hub.Run()

	reader := catalog.NewReader(db, c, config.CacheTTL(), config.FeaturedLimit(), config.OrdersLimit())
	writer := catalog.NewWriter(db, c, bus)

	// Size vocabulary bootstrap is idempotent; racing replicas are resolved
	// by the unique constraint on sizes.name_key.
	if n, err := catalog.EnsureSizes(context.Background(), db); err != nil {
		logger.Warn("size bootstrap failed", "error", err)
	} else if n > 0 {
		logger.Info("size vocabulary seeded", "inserted", n)
	}

	schema, err := controllers.NewCatalogSchema(reader)
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	deps := routes.Deps{
		Storefront:  controllers.NewStorefrontController(reader),
		Products:    controllers.NewProductController(reader, writer),
		Categories:  controllers.NewCategoryController(reader, writer),
		Orders:      controllers.NewOrderController(reader),
		Upload:      controllers.NewUploadController(disk, config.UploadFolder()),
		GraphQL:     gql.Handler(schema),
		Hub:         hub,
		AdminSecret: config.AdminJWTSecret(),
	}
	if config.StorageDefault() == "local" {
		deps.LocalStorageRoot = config.StorageLocalRoot()
	}
	routes.Register(r, deps)

	return &Server{db: db, cache: c, hub: hub, router: r, mongoLog: mongoLog}, nil
}

// Handler exposes the mounted HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router.Handler() }

// Routes exposes the named route table for the route:list command.
func (s *Server) Routes() []router.RouteInfo { return s.router.Routes() }

// Start serves HTTP until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Start() error {
	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portostore listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)

	if s.mongoLog != nil {
		s.mongoLog.Close()
	}
	return err
}

// buildDisk constructs the configured storage disk through the manager, so
// both drivers stay registered and selectable by name.
func buildDisk() (storage.Disk, error) {
	m := storage.NewManager(config.StorageDefault())
	m.Register("local", storage.NewLocalDisk(storage.LocalOptions{
		Root:    config.StorageLocalRoot(),
		BaseURL: config.StorageURL(),
	}))

	if config.StorageS3Bucket() != "" {
		s3disk, err := storage.NewS3Disk(storage.S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			return nil, err
		}
		m.Register("s3", s3disk)
	}

	return m.Default()
}
