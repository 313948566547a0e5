package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"share-ledger-api/config"
	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/application/services"
	"share-ledger-api/internal/infrastructure/db/postgres"
	auditDB "share-ledger-api/internal/infrastructure/db/postgres/audit"
	fileDB "share-ledger-api/internal/infrastructure/db/postgres/file"
	shareDB "share-ledger-api/internal/infrastructure/db/postgres/share"
	userDB "share-ledger-api/internal/infrastructure/db/postgres/user"
	"share-ledger-api/internal/infrastructure/jwt"
	"share-ledger-api/internal/infrastructure/metrics"
	"share-ledger-api/internal/infrastructure/mirror"
	"share-ledger-api/internal/infrastructure/moderation"
	"share-ledger-api/internal/infrastructure/mq"
	"share-ledger-api/internal/infrastructure/sessions"
	"share-ledger-api/internal/infrastructure/storage"
	"share-ledger-api/internal/interface/api/rest"
	"share-ledger-api/internal/interface/api/rest/middleware"
	"share-ledger-api/pkg/notifier"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	store      ports.ContentStore
	mirrorPool *mirror.Pool // nil when no mirror provider is configured
	moderation ports.Moderation
	sessions   *sessions.Store
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.Notifier
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// local content store
	store, err := storage.NewLocal(cfg.Storage.UploadDir, logger)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	// mirror provider, optional
	var mirrorPool *mirror.Pool
	if cfg.Mirror.Configured() {
		cld, err := mirror.NewCloudinary(logger, cfg.Mirror)
		if err != nil {
			logger.Fatal("failed to configure mirror provider", zap.Error(err))
		}
		mirrorPool = mirror.NewPool(cld, cfg.Mirror.Workers, cfg.Mirror.Timeout, logger)
	}

	// content moderation
	moderationAdapter := newModeration(cfg.Moderation, logger)

	// session revocation
	sessionStore, err := sessions.New(ctx, logger, cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// email transcript consumer
	transcript, err := notifier.NewTranscript(cfg.Storage.EmailDir)
	if err != nil {
		logger.Fatal("failed to prepare email transcript dir", zap.Error(err))
	}
	mqConsumer := notifier.New(cfg.MQ, logger, transcript)
	if err = mqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = mqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		store:      store,
		mirrorPool: mirrorPool,
		moderation: moderationAdapter,
		sessions:   sessionStore,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: mqConsumer,
	}, nil
}

// newModeration builds the detector chain for the configured mode. A nil
// return means uploads skip the gate entirely.
func newModeration(cfg config.Moderation, logger *zap.Logger) ports.Moderation {
	if cfg.Mode == config.ModerationDisabled {
		return nil
	}

	var detectors []moderation.Detector
	if cfg.ClassifierURL != "" {
		detectors = append(detectors, moderation.NewHTTPClassifier(cfg.ClassifierURL))
	}
	detectors = append(detectors, moderation.NewPixelDetector())

	return moderation.NewAdapter(detectors, cfg.Mode == config.ModerationRequired, cfg.Threshold, logger)
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.sessions != nil {
		_ = a.sessions.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	if a.mirrorPool != nil {
		g.Go(func() error {
			a.mirrorPool.Run(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := userDB.NewRepository(a.db)
	fileRepo := fileDB.NewRepository(a.db)
	shareRepo := shareDB.NewRepository(a.db)
	auditRepo := auditDB.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(jwtService, a.cfg.App.TokenTTL)
	userService := services.NewUserService(userRepo, auditRepo, a.mCounter, a.logger)
	adminService := services.NewAdminService(auditRepo, shareRepo)
	shareService := services.NewShareService(shareRepo, fileRepo, userRepo, auditRepo, a.mq, a.mCounter, a.logger)

	var mirrorPort ports.Mirror
	if a.mirrorPool != nil {
		mirrorPort = a.mirrorPool
	}
	uploadService := services.NewUploadService(
		a.store,
		mirrorPort,
		a.moderation,
		fileRepo,
		shareRepo,
		userRepo,
		auditRepo,
		a.mq,
		a.cfg.Storage.MaxUploadBytes,
		a.mCounter,
		a.logger,
	)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService, a.sessions, jwtService)
	rest.NewUserController(a.router, userService, a.logger, jwtService, a.sessions)
	rest.NewFileController(a.router, uploadService, shareService, a.logger, jwtService, a.sessions)
	rest.NewAdminController(a.router, adminService, a.logger, jwtService, a.sessions)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
