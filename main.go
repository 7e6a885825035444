package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"jobboard-service/internal/config"
	"jobboard-service/internal/db"
	"jobboard-service/internal/handlers"
	"jobboard-service/internal/middleware"
	"jobboard-service/internal/observability"
	"jobboard-service/internal/rabbitmq"
	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
	"jobboard-service/internal/ws"
)

const serviceName = "jobboard-service"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Environment == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	database, err := db.Connect(cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer database.Close()

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	defer auditPublisher.Close()
	log.Info().Str("mode", rabbitmq.PublisherMode(auditPublisher)).Msg("audit publisher ready")
	audit := telemetry.NewAuditEmitter(auditPublisher, cfg.AMQP.AuditRoutingKey, serviceName, cfg.Environment)

	if cfg.AMQP.URL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("ws event publisher unavailable, events disabled")
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(context.Background(), cfg.Tracing.OTLPEndpoint, serviceName, cfg.Environment)
		if err != nil {
			log.Warn().Err(err).Msg("tracing init failed, continuing without traces")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("tracer shutdown failed")
				}
			}()
		}
	}

	userRepo := repositories.NewUserRepo(database)
	jobRepo := repositories.NewJobPostingRepo(database)
	applicationRepo := repositories.NewApplicationRepo(database)
	conversationRepo := repositories.NewConversationRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	blockRepo := repositories.NewBlockRepo(database)

	hub := ws.NewHub()

	userHandler := handlers.NewUserHandler(userRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, userRepo, audit)
	applicationHandler := handlers.NewApplicationHandler(applicationRepo, jobRepo, audit)
	conversationHandler := handlers.NewConversationHandler(conversationRepo, messageRepo, audit)
	messageHandler := handlers.NewMessageHandler(conversationRepo, messageRepo, blockRepo, hub, audit)
	blockHandler := handlers.NewBlockHandler(blockRepo, audit)

	conversationWS := ws.NewConversationWebSocketHandler(hub, conversationRepo, cfg.Auth.JWTSecret)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(cfg.Auth.JWTSecret)

	router.POST("/users", userHandler.CreateUser)

	router.GET("/jobs", jobHandler.ListJobs)
	router.POST("/jobs", authMiddleware, jobHandler.CreateJob)
	router.PATCH("/jobs/:job_id", authMiddleware, jobHandler.UpdateJob)
	router.DELETE("/jobs/:job_id", authMiddleware, jobHandler.DeleteJob)

	router.POST("/applications", authMiddleware, applicationHandler.CreateApplication)

	router.POST("/conversations", authMiddleware, conversationHandler.CreateConversation)
	router.GET("/conversations", authMiddleware, conversationHandler.ListConversations)
	router.GET("/conversations/:conversation_id/messages", authMiddleware, conversationHandler.GetConversationMessages)

	router.POST("/messages", authMiddleware, messageHandler.PostMessage)

	router.POST("/blocks", authMiddleware, blockHandler.CreateBlock)
	router.DELETE("/blocks/:block_id", authMiddleware, blockHandler.RevokeBlock)

	// Token is carried in the query string; the handler authenticates before
	// upgrading.
	router.GET("/ws/conversations/:conversation_id", conversationWS.Handle)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterDebugRoutes(router, audit, cfg.Debug.Routes)

	log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
