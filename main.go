package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayfinder/config"
	"stayfinder/cron"
	"stayfinder/database"
	"stayfinder/database/repository"
	"stayfinder/handlers"
	"stayfinder/middleware"
	"stayfinder/routes"
	"stayfinder/services/booking"
	"stayfinder/services/listing"
	"stayfinder/services/notification"
	"stayfinder/services/tasks"
	"stayfinder/services/user"
	"stayfinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	db := database.DB()
	userRepo := repository.NewMongoUserRepo(db)
	listingRepo := repository.NewMongoListingRepo(db)
	bookingRepo := repository.NewMongoBookingRepo(db)
	notificationRepo := repository.NewMongoNotificationRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(rootCtx, 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"users":         userRepo.EnsureIndexes,
		"listings":      listingRepo.EnsureIndexes,
		"bookings":      bookingRepo.EnsureIndexes,
		"notifications": notificationRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to create %s indexes: %v", name, err)
		}
	}
	cancelIndexes()

	// push delivery is enabled only when Firebase and the queue's Redis are both available.
	var (
		notificationOpts = []notification.Option{notification.WithCache(utils.GetCacheClient())}
		queueClient      *asynq.Client
		pushWorker       *asynq.Server
	)
	fcm, err := utils.FirebaseMessaging(rootCtx)
	switch {
	case err != nil:
		logger.Warn("push notifications disabled", zap.Error(err))
	case fcm == nil:
		logger.Info("push notifications disabled: no Firebase credentials configured")
	case utils.GetCacheClient() == nil:
		logger.Warn("push notifications disabled: redis unavailable")
	default:
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		notificationOpts = append(notificationOpts, notification.WithPusher(tasks.NewPushQueue(queueClient)))
		pushWorker = cron.InitPushWorker(rootCtx, notification.NewPushSender(fcm, userRepo, logger), logger)
	}

	// services.
	userService, err := user.NewDefaultUserService(userRepo, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	listingService, err := listing.NewDefaultListingService(listingRepo, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	notificationService, err := notification.NewDefaultNotificationService(
		notificationRepo, listingRepo, bookingRepo, logger, notificationOpts...,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	bookingService, err := booking.NewDefaultBookingService(
		bookingRepo, listingRepo, userRepo, notificationService, logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		AuthCache:     utils.GetAuthCacheClient(),
		Auth:          handlers.NewAuthHandler(userService, logger),
		Listings:      handlers.NewListingHandler(listingService, userService, logger),
		Bookings:      handlers.NewBookingHandler(bookingService, logger),
		Notifications: handlers.NewNotificationHandler(notificationService, logger),
	}
	if storageService, err := utils.Cloudinary(); err != nil {
		logger.Warn("image uploads disabled", zap.Error(err))
	} else {
		handlerBundle.Storage = handlers.NewStorageHandler(storageService, logger)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	redisClients := []*redis.Client{}
	for _, c := range []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()} {
		if c != nil {
			redisClients = append(redisClients, c)
		}
	}
	utils.StartHealthMonitor(rootCtx, redisClients, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if pushWorker != nil {
		pushWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	utils.CloseRedis()
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect from MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
