package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/configs"
	"github.com/januaraliosada/super-delivery/controllers"
	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/gateway"
	"github.com/januaraliosada/super-delivery/middlewares"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/pkg/metrics"
	"github.com/januaraliosada/super-delivery/pkg/resp"
	"github.com/januaraliosada/super-delivery/repository"
	"github.com/januaraliosada/super-delivery/services"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log logging.Logger) {
	r.Use(middlewares.CORSMiddleware())

	m := metrics.NewServerMetrics("api")
	r.Use(m.Middleware())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	stripe := gateway.NewStripeClient(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	authSvc := services.NewAuthService(userRepo, log, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(restRepo, userRepo, log)
	menuSvc := services.NewMenuService(restRepo, log)
	cartSvc := services.NewCartService(db, cartRepo, restRepo, log)
	orderSvc := services.NewOrderService(db, orderRepo, restRepo, userRepo, log)
	trackSvc := services.NewTrackingService(orderRepo, restRepo, userRepo, log)
	paySvc := services.NewPaymentService(db, orderRepo, stripe, log)

	// Controllers
	t := &resp.Translator{Log: log, Debug: cfg.Debug}
	authCtrl := controllers.NewAuthController(authSvc, t, cfg.JWTSecret)
	restCtrl := controllers.NewRestaurantController(restSvc, t)
	menuCtrl := controllers.NewMenuController(menuSvc, t)
	cartCtrl := controllers.NewCartController(cartSvc, t, cfg.JWTSecret)
	orderCtrl := controllers.NewOrderController(orderSvc, t)
	trackCtrl := controllers.NewTrackingController(trackSvc, t)
	payCtrl := controllers.NewPaymentController(paySvc, t)

	authed := middlewares.AuthMiddleware(cfg.JWTSecret)
	api := r.Group("/api")

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/logout", authCtrl.Logout)
		// Verify and refresh report on the token instead of gating on it.
		a.GET("/verify", authCtrl.Verify)
		a.POST("/refresh", authCtrl.Refresh)
	}
	aAuth := api.Group("/auth", authed)
	{
		aAuth.GET("/profile", authCtrl.Profile)
		aAuth.PUT("/profile", authCtrl.UpdateProfile)
		aAuth.PUT("/change-password", authCtrl.ChangePassword)
	}

	// Catalog (public reads)
	api.GET("/restaurants", restCtrl.List)
	api.GET("/restaurants/:id", restCtrl.Detail)
	api.GET("/restaurants/:id/menu", menuCtrl.List)

	// Catalog (restaurant/admin writes)
	owner := middlewares.AuthMiddleware(cfg.JWTSecret, entity.UserTypeRestaurantOwner, entity.UserTypeAdmin)
	api.POST("/restaurants", owner, restCtrl.Create)
	api.PUT("/restaurants/:id", owner, restCtrl.Update)
	api.DELETE("/restaurants/:id", owner, restCtrl.Delete)
	api.POST("/restaurants/:id/menu", owner, menuCtrl.Create)
	api.PUT("/menu-items/:id", owner, menuCtrl.Update)
	api.DELETE("/menu-items/:id", owner, menuCtrl.Delete)

	// Cart
	api.GET("/cart", authed, cartCtrl.Get)
	api.POST("/cart/add", authed, cartCtrl.Add)
	api.DELETE("/cart", authed, cartCtrl.Clear)
	// Count tolerates missing auth, returning 0.
	api.GET("/cart/count", cartCtrl.Count)

	// Orders
	o := api.Group("/orders", authed)
	{
		o.GET("", orderCtrl.List)
		o.POST("", orderCtrl.Create)
		o.GET("/available", orderCtrl.Available)
		o.GET("/:id", orderCtrl.Detail)
		o.PUT("/:id/status", orderCtrl.UpdateStatus)
		o.PUT("/:id/assign-driver", orderCtrl.AssignDriver)
		o.POST("/:id/review", orderCtrl.AddReview)

		// Tracking
		o.GET("/:id/tracking", trackCtrl.Track)
		o.GET("/customer/:id/active", trackCtrl.CustomerActive)
		o.GET("/restaurant/:id/pending", trackCtrl.RestaurantPending)
		o.GET("/driver/:id/assigned", trackCtrl.DriverAssigned)
	}

	// Payments
	api.POST("/create-payment-intent", authed, payCtrl.CreateIntent)
	api.POST("/confirm-payment", authed, payCtrl.Confirm)
	api.POST("/webhook", payCtrl.Webhook)
	api.GET("/payment-methods", payCtrl.Methods)
}
