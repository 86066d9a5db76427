package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/audit"
	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/avatar"
	"github.com/BruksfildServices01/habitta/internal/config"
	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/handlers"
	infraRepo "github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/mailer"
	"github.com/BruksfildServices01/habitta/internal/metrics"
	"github.com/BruksfildServices01/habitta/internal/middleware"
	"github.com/BruksfildServices01/habitta/internal/storage"
	ucRecommendation "github.com/BruksfildServices01/habitta/internal/usecase/recommendation"
)

// Services reúne as dependências criadas no main (redis, storage, e-mail).
type Services struct {
	Sessions    *auth.SessionManager
	Storage     storage.Driver
	AvatarCache avatar.Cache
	Mailer      mailer.Sender
	Audit       *audit.Dispatcher
	Metrics     *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc Services) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	establishmentRepo := infraRepo.NewEstablishmentGormRepository(db)
	recommendationRepo := infraRepo.NewRecommendationGormRepository(db)

	avatars := avatar.NewService(userRepo, svc.Storage, svc.AvatarCache)

	// ======================================================
	// 🧠 USE CASES: RECOMMENDATIONS
	// ======================================================
	viewRecommendationsUC := ucRecommendation.NewViewClientRecommendations(recommendationRepo)
	createRecommendationUC := ucRecommendation.NewCreateRecommendation(recommendationRepo, svc.Audit)
	selectUC := ucRecommendation.NewSelectEstablishment(recommendationRepo, svc.Audit)
	deselectUC := ucRecommendation.NewDeselectEstablishment(recommendationRepo, svc.Audit)
	finalizeUC := ucRecommendation.NewFinalizeSelection(recommendationRepo, svc.Audit)
	saveNotesUC := ucRecommendation.NewSaveNotes(recommendationRepo, svc.Audit)
	deleteRecommendationUC := ucRecommendation.NewDeleteRecommendation(recommendationRepo, svc.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, svc.Sessions, svc.Mailer, svc.Audit, cfg)
	meHandler := handlers.NewMeHandler(userRepo, avatars, svc.Audit)
	clientHandler := handlers.NewClientHandler(clientRepo, establishmentRepo, svc.Audit)
	establishmentHandler := handlers.NewEstablishmentHandler(establishmentRepo, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(clientRepo, establishmentRepo, recommendationRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	recommendationHandler := handlers.NewRecommendationHandler(
		recommendationRepo,
		viewRecommendationsUC,
		createRecommendationUC,
		selectUC,
		deselectUC,
		finalizeUC,
		saveNotesUC,
		deleteRecommendationUC,
	)

	// ======================================================
	// 🌍 INFRA HTTP
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if svc.Metrics != nil {
		r.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))
	}

	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		r.Static("/uploads", cfg.UploadsPath)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH (público)
		// ------------------------------
		limiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", limiter.Middleware(), authHandler.Login)
		api.POST("/auth/forgot-password", limiter.Middleware(), authHandler.ForgotPassword)
		api.POST("/auth/reset-password/:token", authHandler.ResetPassword)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(svc.Sessions, userRepo))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me", meHandler.UpdateMe)
			secured.GET("/users/:id/avatar", meHandler.Avatar)
		}

		common := secured.Group("/")
		common.Use(middleware.RequireLevel(access.LevelComum))
		{
			common.GET("/dashboard", dashboardHandler.Get)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			common.GET("/clientes", clientHandler.List)
			common.POST("/clientes", clientHandler.Create)
			common.GET("/clientes/exportar/:formato", clientHandler.Export)
			common.GET("/clientes/:id", clientHandler.Get)
			common.PUT("/clientes/:id", clientHandler.Update)
			common.DELETE("/clientes/:id", clientHandler.Delete)

			// ------------------------------
			// ESTABELECIMENTOS
			// ------------------------------
			common.GET("/estabelecimentos/tipos", establishmentHandler.Types)
			common.GET("/estabelecimentos", establishmentHandler.List)
			common.POST("/estabelecimentos", establishmentHandler.Create)
			common.GET("/estabelecimentos/exportar/:formato", establishmentHandler.Export)
			common.GET("/estabelecimentos/:id", establishmentHandler.Get)
			common.PUT("/estabelecimentos/:id", establishmentHandler.Update)
			common.DELETE("/estabelecimentos/:id", establishmentHandler.Delete)

			// ------------------------------
			// RECOMENDAÇÕES
			// ------------------------------
			common.GET("/recomendacoes", recommendationHandler.Overview)
			common.GET("/recomendacoes/exportar/:formato", recommendationHandler.Export)
			common.GET("/recomendacoes/cliente/:id", recommendationHandler.ViewClient)
			common.POST("/recomendacoes/cliente/:id/nova", recommendationHandler.New)
			common.POST("/recomendacoes/cliente/:id/gerar", recommendationHandler.Generate)
			common.POST("/recomendacoes/cliente/:id/salvar", recommendationHandler.SaveNotes)
			common.POST("/recomendacoes/selecionar", recommendationHandler.Select)
			common.POST("/recomendacoes/desselecionar", recommendationHandler.Deselect)
			common.POST("/recomendacoes/finalizar", recommendationHandler.Finalize)
			common.POST("/recomendacoes/excluir/:id", recommendationHandler.Delete)
		}

		admin := secured.Group("/")
		admin.Use(middleware.RequireLevel(access.LevelAdmin))
		{
			admin.PATCH("/users/:id/level", meHandler.SetLevel)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
