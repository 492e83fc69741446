// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/router/handler"
	"bistro/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	OrderHandler       *handler.OrderHandler
	ReservationHandler *handler.ReservationHandler
	CatalogHandler     *handler.CatalogHandler
	PromoHandler       *handler.PromoHandler
	ReviewHandler      *handler.ReviewHandler
	DashboardHandler   *handler.DashboardHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.GET("/verify", r.params.AuthHandler.VerifyEmail)
	}

	// Profile routes require authentication
	profileGroup := api.Group("/profile")
	profileGroup.Use(auth.Authenticate)
	{
		profileGroup.GET("", r.params.AuthHandler.GetProfile)
		profileGroup.PUT("", r.params.AuthHandler.UpdateProfile)
	}

	// Seller-facing order listing plus the shared order lifecycle
	orderGroup := api.Group("/order")
	orderGroup.Use(auth.Authenticate)
	{
		orderGroup.GET("", r.params.OrderHandler.ListForSeller)
		orderGroup.POST("", r.params.OrderHandler.Create)
		orderGroup.GET("/:id", r.params.OrderHandler.GetByID)
		orderGroup.PUT("/:id", r.params.OrderHandler.UpdateStatus)
	}

	// Client-facing order listing and self-delete
	clientOrderGroup := api.Group("/clientOrders")
	clientOrderGroup.Use(auth.Authenticate)
	{
		clientOrderGroup.GET("", r.params.OrderHandler.ListForClient)
		clientOrderGroup.DELETE("/:id", r.params.OrderHandler.Delete)
	}

	// Reservations: create (client), list (role-scoped), transition
	reservationGroup := api.Group("/reservations")
	reservationGroup.Use(auth.Authenticate)
	{
		reservationGroup.POST("", r.params.ReservationHandler.Create)
		reservationGroup.GET("", r.params.ReservationHandler.List)
		reservationGroup.PATCH("", r.params.ReservationHandler.UpdateStatus)
	}

	// Promo management is admin-only; the applicator is open
	promoGroup := api.Group("/promo")
	{
		promoGroup.POST("/apply", r.params.PromoHandler.Apply)

		adminPromo := promoGroup.Group("")
		adminPromo.Use(auth.Authenticate)
		adminPromo.Use(auth.RequireRole(entity.RoleAdmin))
		{
			adminPromo.GET("", r.params.PromoHandler.List)
			adminPromo.POST("", r.params.PromoHandler.Create)
			adminPromo.PUT("/:id", r.params.PromoHandler.Update)
			adminPromo.DELETE("", r.params.PromoHandler.Delete)
		}
	}

	// Public browse surface
	api.GET("/sellers", r.params.CatalogHandler.ListSellers)
	api.GET("/sellers/:id", r.params.CatalogHandler.GetSeller)
	api.GET("/menu-item", r.params.CatalogHandler.ListMenuItems)
	api.GET("/category", r.params.CatalogHandler.ListCategories)

	// Menu management requires the seller role; the ownership guard inside
	// the usecase restricts edits to the owning seller.
	menuGroup := api.Group("/menu-item")
	menuGroup.Use(auth.Authenticate)
	{
		menuGroup.POST("", r.params.CatalogHandler.CreateMenuItem)
		menuGroup.PUT("/:id", r.params.CatalogHandler.UpdateMenuItem)
		menuGroup.DELETE("/:id", r.params.CatalogHandler.DeleteMenuItem)
	}

	// Site reviews: reading is public, writing needs a login
	reviewGroup := api.Group("/reviews")
	{
		reviewGroup.GET("", r.params.ReviewHandler.List)

		authedReviews := reviewGroup.Group("")
		authedReviews.Use(auth.Authenticate)
		{
			authedReviews.POST("", r.params.ReviewHandler.Create)
			authedReviews.PATCH("/:id", r.params.ReviewHandler.Reply)
			authedReviews.DELETE("/:id", r.params.ReviewHandler.Delete)
		}
	}

	// Analytics panel for admins and sellers
	dashboardGroup := api.Group("/dashboard")
	dashboardGroup.Use(auth.Authenticate)
	{
		dashboardGroup.GET("", r.params.DashboardHandler.Overview)
	}
}
