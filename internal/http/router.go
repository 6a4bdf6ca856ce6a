package http

import (
	"foodadmin/internal/config"
	"foodadmin/internal/domain"
	"foodadmin/internal/http/handlers"
	"foodadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route group with its middleware chain. Role gates are
// coarse here; the fine location checks live in the handlers.
func NewRouter(api *handlers.API, env config.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(env.CORSOrigins))

	root := r.Group("/api")
	root.GET("/health", api.Health)
	root.GET("/db-check", api.DBCheck)
	root.POST("/auth/login", api.Login)

	auth := root.Group("")
	auth.Use(middleware.Auth([]byte(env.JWTSecret)))

	countries := auth.Group("/countries")
	{
		countries.GET("", api.GetCountries)
		countries.GET("/:id", api.GetCountryByID)
		countries.POST("", api.CreateCountry)
		countries.PUT("/:id", api.UpdateCountry)
		countries.DELETE("/:id", api.DeleteCountry)
	}

	cities := auth.Group("/cities")
	{
		cities.GET("", api.GetCities)
		cities.GET("/:id", api.GetCityByID)
		cities.POST("", api.CreateCity)
		cities.PUT("/:id", api.UpdateCity)
		cities.DELETE("/:id", api.DeleteCity)
	}

	zones := auth.Group("/zones")
	{
		zones.GET("", api.GetZones)
		zones.GET("/:id", api.GetZoneByID)
		zones.POST("", api.CreateZone)
		zones.PUT("/:id", api.UpdateZone)
		zones.DELETE("/:id", api.DeleteZone)
	}

	admins := auth.Group("/admins", middleware.RequireRoles(domain.RoleAdmin))
	{
		admins.GET("", api.GetAdmins)
		admins.GET("/:id", api.GetAdminByID)
		admins.POST("", api.CreateAdmin)
		admins.PUT("/:id", api.UpdateAdmin)
		admins.DELETE("/:id", api.DeleteAdmin)
	}

	stores := auth.Group("/stores", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator))
	{
		stores.GET("", api.GetStores)
		stores.GET("/:id", api.GetStoreByID)
		stores.POST("", api.CreateStore)
		stores.PUT("/:id", api.UpdateStore)
		stores.PUT("/:id/toggle-busy", api.ToggleStoreBusy)
		stores.DELETE("/:id", api.DeleteStore)
	}

	categories := auth.Group("/categories", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator))
	{
		categories.GET("", api.GetCategories)
		categories.POST("", api.CreateCategory)
		categories.PUT("/:id", api.UpdateCategory)
		categories.PUT("/:id/reposition", api.RepositionCategory)
		categories.DELETE("/:id", api.DeleteCategory)
	}

	items := auth.Group("/items", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator))
	{
		items.GET("", api.GetItems)
		items.GET("/:id", api.GetItemByID)
		items.POST("", api.CreateItem)
		items.PUT("/:id", api.UpdateItem)
		items.DELETE("/:id", api.DeleteItem)
	}

	orders := auth.Group("/orders", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperator, domain.RoleFinance))
	{
		orders.GET("", api.GetOrders)
		orders.GET("/:id", api.GetOrderByID)
		orders.GET("/:id/invoice", api.GetOrderInvoice)
		orders.POST("", api.CreateOrder)
		orders.PUT("/:id/status", api.UpdateOrderStatus)
		orders.PUT("/:id/assign-driver", api.AssignOrderDriver)
	}

	promos := auth.Group("/promo-codes", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFinance))
	{
		promos.GET("", api.GetPromoCodes)
		promos.GET("/:id", api.GetPromoCodeByID)
		promos.POST("", api.CreatePromoCode)
		promos.PUT("/:id", api.UpdatePromoCode)
		promos.DELETE("/:id", api.DeletePromoCode)
	}

	payments := auth.Group("/payment-options", middleware.RequireRoles(domain.RoleAdmin, domain.RoleFinance))
	{
		payments.GET("", api.GetPaymentOptions)
		payments.GET("/:id", api.GetPaymentOptionByID)
		payments.POST("", api.CreatePaymentOption)
		payments.PUT("/:id", api.UpdatePaymentOption)
		payments.PUT("/:id/reposition", api.RepositionPaymentOption)
		payments.DELETE("/:id", api.DeletePaymentOption)
	}

	banners := auth.Group("/banners", middleware.RequireRoles(domain.RoleAdmin))
	{
		banners.GET("", api.GetBanners)
		banners.GET("/:id", api.GetBannerByID)
		banners.POST("", api.CreateBanner)
		banners.PUT("/:id", api.UpdateBanner)
		banners.PUT("/:id/reposition", api.RepositionBanner)
		banners.DELETE("/:id", api.DeleteBanner)
	}

	ratings := auth.Group("/ratings", middleware.RequireRoles(domain.RoleAdmin, domain.RoleSupport))
	{
		ratings.GET("", api.GetRatings)
		ratings.GET("/:id", api.GetRatingByID)
		ratings.PUT("/:id/moderate", api.ModerateRating)
		ratings.DELETE("/:id", api.DeleteRating)
	}

	tickets := auth.Group("/tickets", middleware.RequireRoles(domain.RoleAdmin, domain.RoleSupport))
	{
		tickets.GET("", api.GetTickets)
		tickets.GET("/:id", api.GetTicketByID)
		tickets.POST("", api.CreateTicket)
		tickets.POST("/:id/messages", api.AddTicketMessage)
		tickets.PUT("/:id/messages/read", api.MarkTicketRead)
		tickets.PUT("/:id/close", api.CloseTicket)
	}

	return r
}
