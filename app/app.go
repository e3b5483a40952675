package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/scottwarrens/challengeboard/cache"
	"github.com/scottwarrens/challengeboard/config"
	"github.com/scottwarrens/challengeboard/database"
	apperrors "github.com/scottwarrens/challengeboard/errors"
	commonevents "github.com/scottwarrens/challengeboard/events"
	internalcache "github.com/scottwarrens/challengeboard/internal/cache"
	internalevents "github.com/scottwarrens/challengeboard/internal/events"
	"github.com/scottwarrens/challengeboard/internal/events/publisher"
	"github.com/scottwarrens/challengeboard/internal/handler"
	"github.com/scottwarrens/challengeboard/internal/repository"
	"github.com/scottwarrens/challengeboard/internal/scheduler"
	"github.com/scottwarrens/challengeboard/internal/service"
	"github.com/scottwarrens/challengeboard/logger"
	"github.com/scottwarrens/challengeboard/models"
	"github.com/scottwarrens/challengeboard/natsjetstream"
)

type App struct {
	cfg              *config.Config
	httpServer       *http.Server
	db               *database.DynamoDBClient
	natsClient       *natsjetstream.Client
	redisClient      *cache.RedisClient
	logger           *logger.Logger
	playerRepo       repository.PlayerRepository
	challengeService service.ChallengeService
	standingsService service.StandingsService
	eventPublisher   *publisher.EventPublisher
	eventSubscriber  *internalevents.EventSubscriber
	scheduler        *scheduler.Scheduler

	cleanup []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, *apperrors.AppError) {
	app := &App{
		cfg:     cfg,
		cleanup: make([]func() error, 0),
	}

	if err := app.initLogger(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init logger")
	}

	if err := app.initDatabase(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init database")
	}

	if err := app.initNATS(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init nats client")
	}

	if err := app.initRedis(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init redis client")
	}

	if err := app.initServices(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init services")
	}

	if err := app.initHTTP(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init http server")
	}

	if err := app.initMessageSubscriber(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init messaging subscriber")
	}

	if err := app.initScheduler(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init scheduler")
	}

	return app, nil
}

func (a *App) initLogger() error {
	if a.cfg.Server.Environment == "development" {
		a.logger = logger.Development("challengeboard")
	} else {
		a.logger = logger.New(logger.Config{
			Level:   a.cfg.Server.LogLevel,
			Format:  "json",
			Service: "challengeboard",
		})
	}
	return nil
}

func (a *App) initDatabase() error {
	dynamoClient, err := database.NewDynamoDBClient(a.cfg)
	if err != nil {
		return err
	}

	a.db = dynamoClient
	return nil
}

func (a *App) initNATS(ctx context.Context) error {
	natsClient, err := natsjetstream.NewClient(&natsjetstream.Config{
		URL:           a.cfg.NATS.URL,
		MaxReconnect:  a.cfg.NATS.MaxReconnect,
		ReconnectWait: time.Duration(a.cfg.NATS.ReconnectWaitSeconds) * time.Second,
		Timeout:       time.Duration(a.cfg.NATS.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	a.natsClient = natsClient

	stream := jetstream.StreamConfig{
		Name:     commonevents.ChallengeEventsStream,
		Subjects: []string{commonevents.ChallengeEventsWildcard},
	}

	if _, streamErr := a.natsClient.JetStream().CreateOrUpdateStream(ctx, stream); streamErr != nil {
		a.logger.Error("Failed to create stream",
			"error", streamErr,
			"stream", stream.Name,
		)
		return streamErr
	}
	a.logger.Info("Stream ready", "stream", stream.Name)

	a.cleanup = append(a.cleanup, natsClient.Close)

	return nil
}

func (a *App) initRedis() error {
	if !a.cfg.Redis.Enabled {
		a.logger.Info("Standings mirror disabled, no redis configured")
		return nil
	}

	redisClient, err := cache.NewRedisClient(a.cfg.Redis)
	if err != nil {
		return err
	}

	a.redisClient = redisClient
	a.cleanup = append(a.cleanup, redisClient.Close)

	return nil
}

func (a *App) initServices(ctx context.Context) error {
	challengeRepo := repository.NewChallengeRepository(a.db)
	submissionRepo := repository.NewSubmissionRepository(a.db)
	resultRepo := repository.NewResultRepository(a.db)
	transactionRepo := database.NewTransactionRepository(a.db)
	a.playerRepo = repository.NewPlayerRepository(a.db)

	if err := a.seedRoster(ctx); err != nil {
		return err
	}

	a.eventPublisher = publisher.NewEventPublisher(a.natsClient, a.logger)

	a.challengeService = service.NewChallengeService(
		challengeRepo,
		submissionRepo,
		resultRepo,
		a.playerRepo,
		transactionRepo,
		a.eventPublisher,
		a.logger,
		service.EngineOptions{AllowHostSubmission: a.cfg.Engine.AllowHostSubmission},
	)

	var mirror service.StandingsMirror
	if a.redisClient != nil {
		mirror = internalcache.NewStandingsRepo(a.redisClient.GetClient())
	}

	a.standingsService = service.NewStandingsService(
		a.challengeService,
		a.playerRepo,
		mirror,
		a.logger,
	)

	return nil
}

func (a *App) seedRoster(ctx context.Context) error {
	players := make([]models.Player, 0, len(a.cfg.Roster))
	for _, p := range a.cfg.Roster {
		players = append(players, models.Player{
			PlayerId: p.ID,
			Name:     p.Name,
			Color:    p.Color,
		})
	}

	if err := a.playerRepo.Seed(ctx, players); err != nil {
		return err
	}

	a.logger.Info("Roster ready", "size", len(players))
	return nil
}

func (a *App) initHTTP() error {
	if a.cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), a.loggingMiddleware(), cors.Default())

	challengeHandler := handler.NewChallengeHandler(a.challengeService, a.logger)
	challengeHandler.RegisterRoutes(engine)

	standingsHandler := handler.NewStandingsHandler(a.standingsService, a.playerRepo, a.logger)
	standingsHandler.RegisterRoutes(engine)

	a.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Server.HTTPPort),
		Handler: engine,
	}

	return nil
}

func (a *App) initMessageSubscriber(ctx context.Context) error {
	a.eventSubscriber = internalevents.NewEventSubscriber(a.natsClient, a.standingsService, a.logger)
	return a.eventSubscriber.Start(ctx)
}

func (a *App) initScheduler() error {
	deadlineScheduler := scheduler.NewDeadlineScheduler(a.challengeService, a.logger)
	interval := time.Duration(a.cfg.Engine.SweepIntervalSeconds) * time.Second
	a.scheduler = scheduler.NewScheduler(deadlineScheduler, interval, a.logger)

	a.cleanup = append(a.cleanup, a.scheduler.Stop)

	return nil
}

func (a *App) Start() {
	go a.scheduler.Start()
	a.logger.Info("Deadline sweep scheduler started")

	go func() {
		a.logger.Info(fmt.Sprintf("HTTP server listening on %d", a.cfg.Server.HTTPPort))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal(fmt.Sprintf("Failed to serve: %v", err))
		}
	}()

	a.logger.Info("Application started successfully")
}

func (a *App) Stop() {
	a.logger.Info("Stopping application...")

	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.logger.Error(fmt.Sprintf("HTTP shutdown error: %v", err))
		}
	}

	for _, cleanup := range a.cleanup {
		if err := cleanup(); err != nil {
			a.logger.Error(fmt.Sprintf("Cleanup error: %v", err))
		}
	}

	a.logger.Info("Application stopped")
}

func (a *App) loggingMiddleware() gin.HandlerFunc {
	return func(g *gin.Context) {
		start := time.Now()
		g.Next()
		a.logger.Info(fmt.Sprintf("Method: %s %s, Status: %d, Duration: %v",
			g.Request.Method, g.Request.URL.Path, g.Writer.Status(), time.Since(start)))
	}
}
