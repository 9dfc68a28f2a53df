package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cataloghttp "github.com/greenbasket/storefront-api/internal/domains/catalog/adapters/http"
	ordershttp "github.com/greenbasket/storefront-api/internal/domains/orders/adapters/http"
	sellershttp "github.com/greenbasket/storefront-api/internal/domains/sellers/adapters/http"
	sellersapp "github.com/greenbasket/storefront-api/internal/domains/sellers/application"
	subscribershttp "github.com/greenbasket/storefront-api/internal/domains/subscribers/adapters/http"
	usershttp "github.com/greenbasket/storefront-api/internal/domains/users/adapters/http"
	userports "github.com/greenbasket/storefront-api/internal/domains/users/ports"
	"github.com/greenbasket/storefront-api/internal/shared/respond"
)

// handlers bundles every HTTP adapter the router mounts.
type handlers struct {
	orders      *ordershttp.Handler
	catalog     *cataloghttp.Handler
	users       *usershttp.Handler
	sellers     *sellershttp.Handler
	subscribers *subscribershttp.Handler
}

// newRouter mounts every endpoint under /api, guarded by buyer or
// seller session middleware where required.
func newRouter(serviceName string, h handlers, sessions userports.SessionStore, sellerService *sellersapp.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		respond.OK(c, "ok", nil)
	})
	router.NoRoute(func(c *gin.Context) {
		respond.Fail(c, http.StatusNotFound, "route not found")
	})

	buyer := requireBuyer(sessions)
	seller := requireSeller(sellerService)

	order := router.Group("/api/order")
	{
		order.POST("/cod", buyer, h.orders.PlaceCOD)
		order.POST("/stripe", buyer, h.orders.PlaceOnline)
		order.POST("/webhook", h.orders.Webhook)
		order.GET("/user", buyer, h.orders.BuyerOrders)
		order.GET("/seller", seller, h.orders.SellerOrders)
		order.POST("/update-payment", seller, h.orders.UpdatePayment)
		order.GET("/stats", seller, h.orders.Stats)
	}

	product := router.Group("/api/product")
	{
		product.POST("/add", seller, h.catalog.Add)
		product.GET("/list", h.catalog.List)
		product.GET("/id", h.catalog.ByID)
		product.POST("/stock", seller, h.catalog.ChangeStock)
		product.POST("/update", seller, h.catalog.Update)
		product.POST("/delete", seller, h.catalog.Delete)
	}

	user := router.Group("/api/user")
	{
		user.POST("/register", h.users.Register)
		user.POST("/login", h.users.Login)
		user.GET("/is-auth", buyer, h.users.IsAuth)
		user.GET("/logout", buyer, h.users.Logout)
	}
	router.POST("/api/cart/update", buyer, h.users.UpdateCart)

	sellerGroup := router.Group("/api/seller")
	{
		sellerGroup.POST("/login", h.sellers.Login)
		sellerGroup.GET("/is-auth", seller, h.sellers.IsAuth)
		sellerGroup.GET("/logout", seller, h.sellers.Logout)
	}

	subscriber := router.Group("/api/subscriber")
	{
		subscriber.POST("/subscribe", h.subscribers.Subscribe)
		subscriber.GET("/list", seller, h.subscribers.List)
		subscriber.POST("/delete", seller, h.subscribers.Delete)
		subscriber.POST("/toggle-status", seller, h.subscribers.ToggleStatus)
	}

	return router
}
