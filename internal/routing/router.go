// Package routing builds the gin engine, wiring middleware, route groups and
// handlers together.
package routing

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voyago/internal/config"
	"voyago/internal/handlers"
	"voyago/internal/managers"
	"voyago/internal/middleware"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

var metadataDto = &schemas.MetadataDTO{
	ApiVersion: "v1",
	ApiName:    "Voyago",
}

// InitRouter builds the gin engine with all middleware and routes attached.
func InitRouter(cfg *config.Config, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr,
	jwtMgr managers.JWTMgr, placesMgr managers.PlacesMgr) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router, cfg)
	setupRoutes(router, databaseMgr, mailMgr, jwtMgr, placesMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr,
	jwtMgr managers.JWTMgr, placesMgr managers.PlacesMgr) {
	router.GET("/", func(c *gin.Context) {
		utils.WriteAndLogResponse(c, metadataDto, http.StatusOK)
	})

	router.GET("/healthz", func(c *gin.Context) {
		if err := databaseMgr.GetPool().Ping(c); err != nil {
			utils.WriteAndLogError(c, schemas.DatabaseError, http.StatusInternalServerError, err)
			return
		}
		utils.WriteAndLogResponse(c, gin.H{"status": "ok"}, http.StatusOK)
	})

	apiRouter := router.Group("/api/v1")
	{
		authRouter := apiRouter.Group("/auth")
		authHdl := handlers.NewAuthHandler(&databaseMgr, &jwtMgr, &mailMgr)
		authRoutes(authRouter, authHdl, jwtMgr)

		destinationRouter := apiRouter.Group("/destinations")
		destinationHdl := handlers.NewDestinationHandler(&databaseMgr, &placesMgr)
		destinationRoutes(destinationRouter, destinationHdl, jwtMgr)

		placeHdl := handlers.NewPlaceHandler(&placesMgr)
		placeRouter := apiRouter.Group("/places")
		placeRoutes(placeRouter, placeHdl)
		mapsRouter := apiRouter.Group("/maps")
		mapsRoutes(mapsRouter, placeHdl)

		tripRouter := apiRouter.Group("/trips")
		tripRouter.Use(jwtMgr.JWTMiddleware())
		tripHdl := handlers.NewTripHandler(&databaseMgr)
		tripRoutes(tripRouter, tripHdl)

		reviewRouter := apiRouter.Group("/reviews")
		reviewHdl := handlers.NewReviewHandler(&databaseMgr)
		reviewRoutes(reviewRouter, reviewHdl, jwtMgr)

		contactHdl := handlers.NewContactHandler(&mailMgr)
		apiRouter.POST("/contact", middleware.ValidateAndSanitizeStruct(&schemas.ContactRequest{}),
			contactHdl.SubmitContactForm)

		i18nRouter := apiRouter.Group("/i18n")
		i18nHdl := handlers.NewI18nHandler()
		i18nRouter.GET("/locales", i18nHdl.ListLocales)
		i18nRouter.GET("/translations/:"+utils.LocaleKey, i18nHdl.GetTranslations)
	}
}

func authRoutes(authRouter *gin.RouterGroup, authHdl handlers.AuthHdl, jwtMgr managers.JWTMgr) {
	authRouter.POST("/register", middleware.ValidateAndSanitizeStruct(&schemas.RegistrationRequest{}), authHdl.Register)
	authRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), authHdl.Login)
	authRouter.POST("/verify-email", middleware.ValidateAndSanitizeStruct(&schemas.VerifyEmailRequest{}), authHdl.VerifyEmail)
	authRouter.POST("/forgot-password", middleware.ValidateAndSanitizeStruct(&schemas.ForgotPasswordRequest{}), authHdl.ForgotPassword)
	authRouter.POST("/reset-password", middleware.ValidateAndSanitizeStruct(&schemas.ResetPasswordRequest{}), authHdl.ResetPassword)
	// The following routes require the user to be authenticated
	authRouter.Use(jwtMgr.JWTMiddleware())
	authRouter.GET("/me", authHdl.Me)
	authRouter.POST("/change-password", middleware.ValidateAndSanitizeStruct(&schemas.ChangePasswordRequest{}), authHdl.ChangePassword)
}

func destinationRoutes(destinationRouter *gin.RouterGroup, destinationHdl handlers.DestinationHdl, jwtMgr managers.JWTMgr) {
	destinationRouter.GET("/search", destinationHdl.SearchDestinations)
	destinationRouter.GET("/:"+utils.DestinationIdKey, destinationHdl.GetDestination)
	// The following routes require the user to be authenticated
	destinationRouter.Use(jwtMgr.JWTMiddleware())
	destinationRouter.POST("/", middleware.ValidateAndSanitizeStruct(&schemas.CreateDestinationRequest{}),
		destinationHdl.CreateDestination)
	destinationRouter.GET("/place/:"+utils.PlaceIdKey, destinationHdl.GetOrCreateByPlace)
}

func placeRoutes(placeRouter *gin.RouterGroup, placeHdl handlers.PlaceHdl) {
	placeRouter.GET("/search", placeHdl.SearchPlaces)
	placeRouter.GET("/:"+utils.PlaceIdKey, placeHdl.GetPlaceDetails)
}

func mapsRoutes(mapsRouter *gin.RouterGroup, placeHdl handlers.PlaceHdl) {
	mapsRouter.POST("/markers", middleware.ValidateAndSanitizeStruct(&schemas.MapBoundsRequest{}), placeHdl.GetMapMarkers)
	mapsRouter.GET("/static-map/:"+utils.PlaceIdKey, placeHdl.GetStaticMap)
}

func tripRoutes(tripRouter *gin.RouterGroup, tripHdl handlers.TripHdl) {
	tripRouter.POST("/", middleware.ValidateAndSanitizeStruct(&schemas.CreateTripRequest{}), tripHdl.CreateTrip)
	tripRouter.GET("/", tripHdl.ListTrips)
	tripRouter.GET("/:"+utils.TripIdKey, tripHdl.GetTrip)
	tripRouter.PUT("/:"+utils.TripIdKey, middleware.ValidateAndSanitizeStruct(&schemas.UpdateTripRequest{}), tripHdl.UpdateTrip)
	tripRouter.DELETE("/:"+utils.TripIdKey, tripHdl.DeleteTrip)
	tripRouter.PUT("/:"+utils.TripIdKey+"/reorder", middleware.ValidateAndSanitizeStruct(&schemas.ReorderTripRequest{}),
		tripHdl.ReorderTrip)
}

func reviewRoutes(reviewRouter *gin.RouterGroup, reviewHdl handlers.ReviewHdl, jwtMgr managers.JWTMgr) {
	reviewRouter.GET("/destination/:"+utils.DestinationIdKey, reviewHdl.ListByDestination)
	// The following route requires the user to be authenticated
	reviewRouter.Use(jwtMgr.JWTMiddleware())
	reviewRouter.POST("/", middleware.ValidateAndSanitizeStruct(&schemas.CreateReviewRequest{}), reviewHdl.CreateReview)
}
