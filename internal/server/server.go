package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"scamshield/internal/config"
	"scamshield/internal/handler"
	"scamshield/internal/ledger"
	"scamshield/internal/middleware"
	"scamshield/internal/phishing"
	"scamshield/internal/repository"
	"scamshield/internal/reputation"
	"scamshield/internal/scanner"
	"scamshield/internal/service"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Stores
	authRepo := repository.NewAuthRepository(s.db, s.logger)
	scanRecords := repository.NewScanRecordStore(s.db, s.logger)
	blocklist := repository.NewBlocklistStore(s.db, s.logger)
	reports := repository.NewReportStore(s.db, s.logger)
	posts := repository.NewPostStore(s.db, s.logger)
	engagement := repository.NewEngagementStore(s.db, s.logger)

	// Core services
	jwtSecret := []byte(s.cfg.Auth.JWTSecret)
	authService := service.NewAuthService(authRepo, jwtSecret, s.logger)
	reputationClient := reputation.NewClient(s.cfg.Reputation.URL, s.cfg.Reputation.APIKey, s.cfg.ReputationTimeout())
	aggregator := phishing.NewAggregator(blocklist, reports, s.logger)
	scanService := scanner.New(reputationClient, aggregator, scanRecords, s.cfg.ScanTimeout(), s.logger)
	engagementLedger := ledger.New(engagement, s.logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, s.logger)
	scanHandler := handler.NewScanHandler(scanService, s.logger)
	postHandler := handler.NewPostHandler(posts, engagementLedger, s.logger)
	reportHandler := handler.NewReportHandler(reports, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	api := s.router.Group("/api")
	api.Use(middleware.Auth(jwtSecret, s.logger))
	{
		api.POST("/scan", scanHandler.Scan)
		api.GET("/scans", scanHandler.History)

		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Get)
		api.POST("/posts/:id/like", postHandler.ToggleLike)
		api.POST("/posts/:id/bookmark", postHandler.ToggleBookmark)
		api.POST("/posts/:id/comments", postHandler.AddComment)
		api.GET("/posts/:id/comments", postHandler.ListComments)
		api.POST("/posts/:id/share", postHandler.Share)
		api.POST("/posts/:id/read", postHandler.MarkRead)

		api.POST("/reports", reportHandler.Create)

		admin := api.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/posts", postHandler.Create)
			admin.POST("/reports/:id/verify", reportHandler.Verify)
			admin.GET("/reports/pending", reportHandler.ListPending)
		}
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("port", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
