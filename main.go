package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podium/config"
	"podium/database"
	applicationRepoPkg "podium/database/repository/application"
	confirmationRepoPkg "podium/database/repository/confirmation"
	financialAidRepoPkg "podium/database/repository/financialaid"
	profileRepoPkg "podium/database/repository/profile"
	userRepoPkg "podium/database/repository/user"
	"podium/handlers"
	"podium/middleware"
	"podium/routes"
	"podium/services/admin"
	"podium/services/application"
	"podium/services/effects"
	"podium/services/notification"
	"podium/services/payment"
	"podium/services/user"
	"podium/utils"
	"podium/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	profileRepo := profileRepoPkg.NewMongoProfileRepo()
	appRepo := applicationRepoPkg.NewMongoApplicationRepo()
	confRepo := confirmationRepoPkg.NewMongoConfirmationRepo()
	aidRepo := financialAidRepoPkg.NewMongoFinancialAidRepo()

	// effect queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEffectQueueDB,
	})
	defer asynqClient.Close()

	fees := effects.FeeSchedule{
		FullCents: config.AppConfig.ProgramFeeCents,
		UDLCents:  config.AppConfig.UDLProgramFeeCents,
	}
	dispatcher := effects.NewAsynqDispatcher(asynqClient, fees, logger)

	// services.
	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Logger: logger,
	}

	appService := &application.DefaultApplicationService{
		Repo:        appRepo,
		ProfileRepo: profileRepo,
		ConfRepo:    confRepo,
		AidRepo:     aidRepo,
		Effects:     dispatcher,
		Logger:      logger,
	}

	adminService := &admin.DefaultAdminService{
		AppRepo:     appRepo,
		ProfileRepo: profileRepo,
		ConfRepo:    confRepo,
		AidRepo:     aidRepo,
		Logger:      logger,
	}

	// effect worker collaborators.
	mailer, err := notification.NewSESMailer(context.Background(),
		config.AppConfig.AWSRegion,
		config.AppConfig.MailFrom,
		config.AppConfig.ProgramName,
		logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mailer: %v", err)
	}
	invoices := payment.NewStripeInvoiceService(config.AppConfig.ProgramName, logger)
	worker.InitEffectWorker(mailer, invoices, confRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		SignUpHandler:          handlers.SignUpHandler(userService),
		SignInHandler:          handlers.SignInHandler(userService),
		RevokeAuthTokenHandler: handlers.RevokeAuthTokenHandler(userService),

		GetProfileHandler:         handlers.GetProfileHandler(profileRepo),
		SaveProfileHandler:        handlers.SaveProfileHandler(profileRepo),
		GetApplicationHandler:     handlers.GetApplicationHandler(appService),
		SaveDraftHandler:          handlers.SaveDraftHandler(appService),
		SubmitApplicationHandler:  handlers.SubmitApplicationHandler(appService),
		GetConfirmationHandler:    handlers.GetConfirmationHandler(appService),
		SubmitConfirmationHandler: handlers.SubmitConfirmationHandler(appService),
		GetFinancialAidHandler:    handlers.GetFinancialAidHandler(appService),
		SubmitFinancialAidHandler: handlers.SubmitFinancialAidHandler(appService),

		AdminStatsHandler:              handlers.AdminStatsHandler(adminService),
		AdminListApplicationsHandler:   handlers.AdminListApplicationsHandler(adminService),
		AdminGetApplicationHandler:     handlers.AdminGetApplicationHandler(adminService),
		AdminPatchApplicationHandler:   handlers.AdminPatchApplicationHandler(appService),
		AdminExportHandler:             handlers.AdminExportHandler(adminService),
		AdminListFinancialAidHandler:   handlers.AdminListFinancialAidHandler(adminService),
		AdminExportFinancialAidHandler: handlers.AdminExportFinancialAidHandler(adminService),
		AdminUpdateAidStatusHandler:    handlers.AdminUpdateAidStatusHandler(adminService),
		AdminEmailRosterHandler:        handlers.AdminEmailRosterHandler(adminService),
		AdminDeleteAllHandler:          handlers.AdminDeleteAllHandler(adminService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
