package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"clinicdesk-service/internal/app/config"
	"clinicdesk-service/internal/app/delivery/http/controllers"
	"clinicdesk-service/internal/app/delivery/http/middlewares"
	"clinicdesk-service/internal/app/delivery/http/routers"
	"clinicdesk-service/internal/app/drivers/database"
	"clinicdesk-service/internal/app/drivers/logger"
	"clinicdesk-service/internal/app/drivers/messaging"
	"clinicdesk-service/internal/app/drivers/storage"
	"clinicdesk-service/internal/app/services/core/files"
	"clinicdesk-service/internal/app/services/core/identity"
	"clinicdesk-service/internal/app/services/core/profiles"
	"clinicdesk-service/internal/app/services/shared/audit"
	"clinicdesk-service/internal/app/services/shared/authprovider"
	sharedredis "clinicdesk-service/internal/app/services/shared/redis"
	sharedstorage "clinicdesk-service/internal/app/services/shared/storage"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logrusLogger := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     postgresDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	auditPublisher, err := audit.NewRabbitMQAuditPublisher(rabbitMQConn, zapLogger)
	if err != nil {
		logrusLogger.Fatalf("Failed to initialize audit publisher: %s", err.Error())
	}

	authProviderClient := authprovider.NewHTTPAuthProviderClient(internalConfig, zapLogger)
	redisRepository := sharedredis.NewRedisRepository(redisClient)
	storageService := sharedstorage.NewMinioStorageService(minioClient, internalConfig, zapLogger)

	clinicianStore := profiles.NewClinicianPostgresRepository(postgresDB, zapLogger)
	clientStore := profiles.NewClientPostgresRepository(postgresDB, zapLogger)
	adminStore := profiles.NewAdminPostgresRepository(postgresDB, zapLogger)
	profileResolver := profiles.NewProfileResolverUsecase(clinicianStore, clientStore, adminStore, zapLogger)
	identityResolver := identity.NewIdentityResolverUsecase(profileResolver, auditPublisher, internalConfig, zapLogger)

	fileUsecase := files.NewFileUsecase(storageService, auditPublisher, internalConfig, zapLogger)

	mw := middlewares.NewMiddlewares(zapLogger, authProviderClient, identityResolver, auditPublisher, redisRepository, internalConfig)

	fileController := controllers.NewFileController(fileUsecase, internalConfig, zapLogger)
	userController := controllers.NewUserController(zapLogger)
	healthController := controllers.NewHealthController(internalConfig)

	appRouters := routers.NewRouters(bootstrap.Router, mw, internalConfig, fileController, userController, healthController)
	appRouters.SetupRoutes()

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		logrusLogger.Infof("Server running on port %s", internalConfig.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrusLogger.Fatalf("Failed to start server: %s", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrusLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(internalConfig.App.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrusLogger.Fatalf("Server forced to shutdown: %s", err.Error())
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrusLogger.Fatalf("Failed to close connections: %s", err.Error())
	}
	logrusLogger.Info("Server exited gracefully")
}
