package handlers

import (
	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/alimgiray/gitossum/web"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Dependencies is everything the routes need
type Dependencies struct {
	DB                   *sqlx.DB
	Sessions             *middleware.Sessions
	UserService          *services.UserService
	MinedRepoService     *services.MinedRepoService
	MiningRequestService *services.MiningRequestService
	FeedbackService      *services.FeedbackService
	ChartService         *services.ChartService
	ExportService        *services.ExportService
}

// NewRouter builds the gin engine with templates, middleware and every route
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	templates, err := web.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), deps.Sessions.Middleware())
	router.SetHTMLTemplate(templates)

	setupRoutes(router, deps)
	return router, nil
}

func setupRoutes(router *gin.Engine, deps Dependencies) {
	homeHandler := NewHomeHandler()
	authHandler := NewAuthHandler(deps.UserService, deps.Sessions)
	repoHandler := NewRepoHandler(deps.MinedRepoService, deps.ChartService, deps.ExportService)
	miningRequestHandler := NewMiningRequestHandler(deps.MiningRequestService)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackService)
	notFoundHandler := NewNotFoundHandler()
	healthHandler := NewHealthHandler(deps.DB)

	// Home page
	router.GET("/", homeHandler.Index)
	router.GET("/about", homeHandler.About)

	// Auth routes
	guest := router.Group("/")
	guest.Use(middleware.LoginForbidden())
	{
		guest.GET("/signup", authHandler.SignupPage)
		guest.POST("/signup", authHandler.Signup)
		guest.GET("/login", authHandler.LoginPage)
		guest.POST("/login", authHandler.Login)
	}
	router.GET("/logout", authHandler.Logout)
	router.GET("/activate/:uid/:token", authHandler.Activate)

	// Protected routes
	members := router.Group("/")
	members.Use(middleware.AuthRequired())
	{
		members.GET("/mining-request", miningRequestHandler.Form)
		members.POST("/mining-request", miningRequestHandler.Submit)
		members.GET("/feedback", feedbackHandler.Form)
		members.POST("/feedback", feedbackHandler.Submit)
	}

	// Repository views
	router.GET("/repos", repoHandler.List)
	router.GET("/repos/:owner/:name", repoHandler.Detail)
	router.GET("/compare/:owner1/:name1/:owner2/:name2", repoHandler.CompareTwo)
	router.GET("/compare3/:owner1/:name1/:owner2/:name2/:owner3/:name3", repoHandler.CompareThree)
	router.GET("/export", repoHandler.Export)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)
}
