package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/config"
	"github.com/perditionlabs/recruitd/internal/constants"
	"github.com/perditionlabs/recruitd/internal/database"
	"github.com/perditionlabs/recruitd/internal/handlers"
	"github.com/perditionlabs/recruitd/internal/mailer"
	"github.com/perditionlabs/recruitd/internal/middleware"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/perditionlabs/recruitd/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganisationRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	offerRepo := repository.NewOfferRepository(db)

	// Outbound mail is optional; without an SMTP host offers are sent
	// silently.
	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	}

	// Services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganisationService(orgRepo)
	campaignService := services.NewCampaignService(campaignRepo, roleRepo)
	questionService := services.NewQuestionService(questionRepo, campaignRepo, roleRepo)
	appService := services.NewApplicationService(appRepo, roleRepo, campaignRepo, questionRepo, answerRepo)
	answerService := services.NewAnswerService(answerRepo, questionRepo, appRepo)
	offerService := services.NewOfferService(offerRepo, appRepo, mail)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganisationHandler(orgService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	questionHandler := handlers.NewQuestionHandler(questionService, campaignService)
	appHandler := handlers.NewApplicationHandler(appService)
	answerHandler := handlers.NewAnswerHandler(answerService, appService)
	offerHandler := handlers.NewOfferHandler(offerService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	readOnly := models.AdminLevelReadOnly
	director := models.AdminLevelDirector
	admin := models.AdminLevelAdmin

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Public applicant-facing routes
		public := api.Group("/public")
		{
			public.GET("/campaigns", campaignHandler.ListOpenCampaigns)
		}

		// Offer reply routes (public, the token is the credential)
		offers := api.Group("/offers")
		{
			offers.GET("/respond/:token", offerHandler.GetOfferByToken)
			offers.POST("/respond/:token", offerHandler.RespondToOffer)
			offers.GET("/:id", middleware.RequireAuth(), middleware.RequireResourceLevel(access.KindOffer, readOnly), offerHandler.GetOffer)
			offers.POST("/:id/send", middleware.RequireAuth(), middleware.RequireResourceLevel(access.KindOffer, admin), offerHandler.SendOffer)
		}

		// Organisation routes (protected)
		orgs := api.Group("/organisations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganisation)
			orgs.GET("", orgHandler.ListOrganisations)
			orgs.POST("/join", orgHandler.JoinOrganisation)
			orgs.GET("/:id", middleware.RequireResourceLevel(access.KindOrganisation, readOnly), orgHandler.GetOrganisation)
			orgs.PATCH("/:id", middleware.RequireResourceLevel(access.KindOrganisation, admin), orgHandler.UpdateOrganisation)
			orgs.DELETE("/:id", middleware.RequireResourceLevel(access.KindOrganisation, admin), orgHandler.DeleteOrganisation)
			orgs.POST("/:id/invite", middleware.RequireResourceLevel(access.KindOrganisation, admin), orgHandler.RegenerateInviteCode)
			orgs.PATCH("/:id/members/:userId", middleware.RequireResourceLevel(access.KindOrganisation, director), orgHandler.SetMemberLevel)
			orgs.DELETE("/:id/members/:userId", middleware.RequireResourceLevel(access.KindOrganisation, director), orgHandler.RemoveMember)
			orgs.GET("/:id/campaigns", middleware.RequireResourceLevel(access.KindOrganisation, readOnly), campaignHandler.ListCampaigns)
			orgs.POST("/:id/campaigns", middleware.RequireResourceLevel(access.KindOrganisation, director), campaignHandler.CreateCampaign)
		}

		// Campaign routes (protected; reads fall through to published)
		campaigns := api.Group("/campaigns")
		campaigns.Use(middleware.RequireAuth())
		{
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PATCH("/:id", middleware.RequireResourceLevel(access.KindCampaign, director), campaignHandler.UpdateCampaign)
			campaigns.POST("/:id/publish", middleware.RequireResourceLevel(access.KindCampaign, director), campaignHandler.PublishCampaign)
			campaigns.DELETE("/:id", middleware.RequireResourceLevel(access.KindCampaign, director), campaignHandler.DeleteCampaign)
			campaigns.GET("/:id/roles", campaignHandler.ListRoles)
			campaigns.POST("/:id/roles", middleware.RequireResourceLevel(access.KindCampaign, director), campaignHandler.CreateRole)
			campaigns.GET("/:id/questions", questionHandler.ListQuestions)
			campaigns.POST("/:id/questions", middleware.RequireResourceLevel(access.KindCampaign, director), questionHandler.CreateQuestion)
		}

		// Role routes (protected; reads fall through to published)
		roles := api.Group("/roles")
		roles.Use(middleware.RequireAuth())
		{
			roles.GET("/:id", campaignHandler.GetRole)
			roles.PATCH("/:id", middleware.RequireResourceLevel(access.KindRole, director), campaignHandler.UpdateRole)
			roles.DELETE("/:id", middleware.RequireResourceLevel(access.KindRole, director), campaignHandler.DeleteRole)
			roles.GET("/:id/questions", questionHandler.ListQuestionsForRole)
			roles.POST("/:id/apply", appHandler.Apply)
			roles.GET("/:id/applications", middleware.RequireResourceLevel(access.KindRole, readOnly), appHandler.ListByRole)
			roles.GET("/:id/offers", middleware.RequireResourceLevel(access.KindRole, director), offerHandler.ListByRole)
		}

		// Question routes (protected; reads fall through to published)
		questions := api.Group("/questions")
		questions.Use(middleware.RequireAuth())
		{
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.PATCH("/:id", middleware.RequireResourceLevel(access.KindQuestion, director), questionHandler.UpdateQuestion)
			questions.DELETE("/:id", middleware.RequireResourceLevel(access.KindQuestion, director), questionHandler.DeleteQuestion)
		}

		// Application routes (protected; applicant ownership checked in the
		// handlers where membership alone is not enough)
		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.GET("", appHandler.ListMine)
			applications.GET("/:id", appHandler.GetApplication)
			applications.POST("/:id/submit", appHandler.Submit)
			applications.PATCH("/:id/status", middleware.RequireResourceLevel(access.KindApplication, director), appHandler.SetStatus)
			applications.GET("/:id/answers", answerHandler.ListAnswers)
			applications.POST("/:id/answers", answerHandler.CreateAnswer)
			applications.GET("/:id/comments", middleware.RequireResourceLevel(access.KindApplication, readOnly), appHandler.ListComments)
			applications.POST("/:id/comments", middleware.RequireResourceLevel(access.KindApplication, director), appHandler.AddComment)
			applications.GET("/:id/ratings", middleware.RequireResourceLevel(access.KindApplication, readOnly), appHandler.ListRatings)
			applications.POST("/:id/ratings", middleware.RequireResourceLevel(access.KindApplication, director), appHandler.AddRating)
			applications.POST("/:id/offers", middleware.RequireResourceLevel(access.KindApplication, admin), offerHandler.CreateOffer)
		}

		// Answer routes (protected; ownership checked in the handlers)
		answers := api.Group("/answers")
		answers.Use(middleware.RequireAuth())
		{
			answers.GET("/:id", answerHandler.GetAnswer)
			answers.PATCH("/:id", answerHandler.UpdateAnswer)
			answers.DELETE("/:id", answerHandler.DeleteAnswer)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
