package main

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
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sms-console/api/swagger"
	"github.com/noah-isme/sms-console/internal/backend"
	"github.com/noah-isme/sms-console/internal/debounce"
	"github.com/noah-isme/sms-console/internal/dto"
	"github.com/noah-isme/sms-console/internal/form"
	"github.com/noah-isme/sms-console/internal/handler"
	"github.com/noah-isme/sms-console/internal/middleware"
	"github.com/noah-isme/sms-console/internal/querycache"
	"github.com/noah-isme/sms-console/internal/repository"
	"github.com/noah-isme/sms-console/internal/service"
	"github.com/noah-isme/sms-console/internal/session"
	"github.com/noah-isme/sms-console/pkg/cache"
	"github.com/noah-isme/sms-console/pkg/config"
	"github.com/noah-isme/sms-console/pkg/database"
	"github.com/noah-isme/sms-console/pkg/jobs"
	"github.com/noah-isme/sms-console/pkg/logger"
	corsmiddleware "github.com/noah-isme/sms-console/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sms-console/pkg/middleware/requestid"
)

// @title SMS Console Gateway
// @version 1.0.0
// @description Role-scoped console views over the auth, user and platform services
// @BasePath /
// @schemes http

const purgeJob = "purge_credentials"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	client := backend.NewClient(cfg.Services, logr, backend.WithRecorder(metrics))
	checks := map[string]handler.Check{}

	var redisClient *redis.Client
	if cfg.Cache.Driver == config.DriverRedis || cfg.Session.Driver == config.DriverRedis {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("redis unavailable", zap.Error(err))
		}
		defer redisClient.Close() //nolint:errcheck
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var store querycache.Store = repository.NewMemoryCacheRepository()
	if cfg.Cache.Driver == config.DriverRedis {
		store = repository.NewCacheRepository(redisClient, logr)
	}
	queryCache := querycache.New(store, querycache.DefaultGraph(), cfg.Cache.TTL, logr, metrics)

	var db *sqlx.DB
	var credentials session.CredentialRepository
	switch cfg.Session.Driver {
	case config.DriverRedis:
		credentials = repository.NewRedisCredentialRepository(redisClient, cfg.Session.TTL)
	case config.DriverPostgres:
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("postgres unavailable", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		checks["postgres"] = func(ctx context.Context) error { return db.PingContext(ctx) }

		pg := repository.NewPostgresCredentialRepository(db, cfg.Session.TTL)
		credentials = pg
		queue := jobs.NewQueue("maintenance", jobs.QueueConfig{MaxRetries: 2, RetryDelay: 30 * time.Second, Logger: logr})
		queue.Handle(purgeJob, func(ctx context.Context, _ jobs.Job) error {
			n, err := pg.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			metrics.RecordSessionsPurged(n)
			logr.Debug("expired credentials purged", zap.Int64("count", n))
			return nil
		})
		queue.Start(ctx)
		defer queue.Stop()
		jobs.Every(ctx, queue, purgeJob, cfg.Session.PurgeInterval)
	default:
		credentials = repository.NewMemoryCredentialRepository()
	}
	sessions := session.NewManager(credentials, logr)

	validate := dto.NewValidator()
	forms := form.NewTracker()
	search := handler.NewSearcher(debounce.New(cfg.Search.Debounce), cfg.Search.MinLength)

	schools := service.NewSchoolService(client, queryCache, validate, logr)
	admins := service.NewSchoolAdminService(client, queryCache, validate, logr)
	teachers := service.NewTeacherService(client, queryCache, validate, logr)
	students := service.NewStudentService(client, queryCache, validate, logr)
	parents := service.NewParentService(client, queryCache, validate, logr)
	classes := service.NewClassService(client, queryCache, validate, logr)
	subjects := service.NewSubjectService(client, queryCache, validate, logr)
	requests := service.NewRequestService(client, queryCache, validate, logr)
	leave := service.NewLeaveService(client, queryCache, validate, logr)
	attendance := service.NewAttendanceService(client, queryCache, students, validate, logr)
	dashboards := service.NewDashboardService(client, queryCache, service.DashboardDeps{
		Schools:    schools,
		Requests:   requests,
		Leave:      leave,
		Attendance: attendance,
	}, logr)
	auth := service.NewAuthService(client, validate, logr)

	r := gin.New()
	r.Use(middleware.Fallback(cfg.ShowErrorDetail, logr))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Session(sessions, cfg.Session.CookieName))

	handler.Register(r, handler.Handlers{
		Auth: handler.NewAuthHandler(auth, sessions, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Env == config.EnvProduction,
		}, logr),
		Metrics:    handler.NewMetricsHandler(metrics, checks),
		Dashboard:  handler.NewDashboardHandler(dashboards),
		Schools:    handler.NewSchoolHandler(schools, admins, forms),
		People:     handler.NewPeopleHandler(teachers, students, parents, search, forms),
		Classes:    handler.NewClassHandler(classes, subjects, forms),
		Requests:   handler.NewRequestHandler(requests, leave, forms),
		Attendance: handler.NewAttendanceHandler(attendance, schools, forms),
		Profile:    handler.NewProfileHandler(teachers, students, admins),
	}, handler.RouteOptions{EnableMetrics: cfg.EnableMetrics})

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
