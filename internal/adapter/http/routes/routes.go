package routes

import (
	"context"
	"errors"
	_ "globalpartner_checkout/docs" // This will be auto-generated
	"globalpartner_checkout/internal/adapter/http/handlers"
	"globalpartner_checkout/internal/adapter/http/middleware"
	repository2 "globalpartner_checkout/internal/adapter/persistence/repository"
	"globalpartner_checkout/internal/config"
	"globalpartner_checkout/internal/infrastructure/cache"
	"globalpartner_checkout/internal/infrastructure/database"
	"globalpartner_checkout/internal/infrastructure/notifications"
	"globalpartner_checkout/internal/infrastructure/payments"
	"globalpartner_checkout/internal/infrastructure/tasks"
	"globalpartner_checkout/internal/infrastructure/webhooksig"
	"globalpartner_checkout/internal/usecase"
	"globalpartner_checkout/internal/usecase/interfaces"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "globalpartner-checkout"

var router = gin.Default()

// Run will start the server and block until SIGINT or SIGTERM.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	app := getRoutes(ctx, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to startup the application: %v", err.Error())
		}
	}()
	log.Printf("[server] listening addr=%s", srv.Addr)

	<-ctx.Done()
	log.Printf("[server] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] http shutdown err=%v", err)
	}
	app.close(shutdownCtx)
}

// application keeps what must be drained on shutdown.
type application struct {
	dispatcher *tasks.Dispatcher
	recipients *cache.RecipientCache
}

func (a application) close(ctx context.Context) {
	if err := a.dispatcher.Shutdown(ctx); err != nil {
		log.Printf("[server] dispatcher shutdown err=%v", err)
	}
	if a.recipients != nil {
		if err := a.recipients.Close(); err != nil {
			log.Printf("[server] redis close err=%v", err)
		}
	}
}

func getRoutes(ctx context.Context, cfg *config.Config) application {
	ddb, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to DynamoDB: %v", err)
	}

	orderRepo := repository2.NewOrderDynamoRepository(ddb)
	serviceRequestRepo := repository2.NewServiceRequestDynamoRepository(ddb)
	paymentRecordRepo := repository2.NewPaymentRecordDynamoRepository(ddb)
	funnelRepo := repository2.NewFunnelEventDynamoRepository(ddb)
	directoryRepo := repository2.NewDirectoryDynamoRepository(ddb)

	providerHTTP := &http.Client{Timeout: cfg.ProviderHTTPTimeout}

	var parcelowGateway interfaces.IParcelowGateway
	if gw, err := payments.NewParcelowGateway(cfg.Parcelow, providerHTTP); err != nil {
		log.Printf("Parcelow gateway not configured: %v", err)
	} else {
		parcelowGateway = gw
	}

	var wiseGateway interfaces.IWiseGateway
	if gw, err := payments.NewWiseGateway(cfg.Wise, providerHTTP); err != nil {
		log.Printf("Wise gateway not configured: %v", err)
	} else {
		wiseGateway = gw
	}

	app := application{
		dispatcher: tasks.NewDispatcher(cfg.Tasks.Workers, cfg.Tasks.QueueSize, cfg.Tasks.Timeout),
		recipients: cache.NewRecipientCache(cfg.Redis, serviceName),
	}
	var recipients interfaces.IRecipientCache
	if app.recipients != nil {
		recipients = app.recipients
	}

	functions := notifications.NewFunctionsClient(cfg.Functions, nil)
	var automation interfaces.IAutomationNotifier
	if cfg.Automation.WebhookURL != "" {
		automation = notifications.NewAutomationClient(cfg.Automation.WebhookURL, nil)
	} else {
		log.Printf("N8N_WEBHOOK_URL not set, automation notifications disabled")
	}

	sideEffects := usecase.NewPaymentSideEffectsUseCase(usecase.PaymentSideEffectsDeps{
		ServiceRequests:  serviceRequestRepo,
		PaymentRecords:   paymentRecordRepo,
		FunnelEvents:     funnelRepo,
		Directory:        directoryRepo,
		Documents:        functions,
		Mailer:           functions,
		Automation:       automation,
		Dispatcher:       app.dispatcher,
		ConsultationSlug: cfg.ConsultationProductSlug,
	})

	parcelowCheckout := usecase.NewParcelowCheckoutUseCase(orderRepo, parcelowGateway, cfg.SiteURL)
	wiseCheckout := usecase.NewWiseCheckoutUseCase(orderRepo, wiseGateway, recipients, cfg.Wise.Account, cfg.Wise.WebURL)
	reconciler := usecase.NewWebhookReconcilerUseCase(orderRepo, parcelowGateway, wiseGateway, sideEffects)

	parcelowVerifier, wiseVerifier := webhookVerifiers(cfg)

	checkoutHandler := handlers.NewCheckoutHandler(parcelowCheckout, wiseCheckout)
	webhookHandler := handlers.NewWebhookHandler(reconciler, parcelowVerifier, wiseVerifier)
	adminHandler := handlers.NewAdminHandler(reconciler)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCheckoutRoutes(v1, checkoutHandler)
	addWebhookRoutes(v1, webhookHandler)

	if cfg.AdminAPIKey != "" {
		addAdminRoutes(v1, cfg.AdminAPIKey, adminHandler)
	} else {
		log.Printf("ADMIN_API_KEY not set, admin routes disabled")
	}
	return app
}

func webhookVerifiers(cfg *config.Config) (parcelow, wise webhooksig.Verifier) {
	if cfg.Parcelow.WebhookSecret != "" {
		parcelow = webhooksig.NewHMACVerifier(cfg.Parcelow.WebhookSecret)
	}
	if cfg.Wise.WebhookPublicKey != "" {
		v, err := webhooksig.NewRSAVerifier(cfg.Wise.WebhookPublicKey)
		if err != nil {
			log.Fatalf("Invalid WISE_WEBHOOK_PUBLIC_KEY: %v", err)
		}
		wise = v
	}
	return parcelow, wise
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())
}
