package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/service"
)

// Handlers groups the REST handlers.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Seed    *handler.SeedHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Contact *handler.ContactHandler
}

// Register wires routes and middleware. graphql may be nil to disable POST /graphql.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authn *Authenticator,
	h Handlers,
	graphql http.Handler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: service.Validator()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := authn.RequireAuth()
	optionalAuth := authn.OptionalAuth()

	api := e.Group("/api")

	// Auth and user administration
	authGroup := api.Group("/auth")
	authGroup.POST("/registeruser", h.Auth.Register)
	authGroup.POST("/loginuser", h.Auth.Login)
	authGroup.GET("/me", h.Auth.Me, requireAuth)
	authGroup.POST("/logout", h.Auth.Logout, requireAuth)
	authGroup.GET("/all-users", h.User.ListUsers, requireAuth, RequireAdmin)
	authGroup.PUT("/update-role/:id", h.User.UpdateRole, requireAuth, RequireAdmin)
	authGroup.DELETE("/delete-user/:id", h.User.DeleteUser, requireAuth, RequireAdmin)

	// Catalog
	products := api.Group("/product")
	products.GET("/all-products", h.Product.ListProducts)
	products.GET("/categories", h.Product.Categories)
	products.GET("/:id", h.Product.GetProduct)
	products.POST("/addproduct", h.Product.AddProduct, requireAuth, RequireAdmin)
	products.POST("/import", h.Seed.ImportProducts, requireAuth, RequireAdmin)
	products.PUT("/update-product/:id", h.Product.UpdateProduct, requireAuth, RequireAdmin)
	products.DELETE("/del-product/:id", h.Product.DeleteProduct, requireAuth, RequireAdmin)

	// Carts work for guests and signed-in users alike
	carts := api.Group("/cart")
	carts.GET("/get-cart", h.Cart.GetCart, optionalAuth)
	carts.POST("/add-to-cart", h.Cart.AddToCart, optionalAuth)
	carts.POST("/update-qty", h.Cart.UpdateQuantity, optionalAuth)
	carts.POST("/remove-item", h.Cart.RemoveItem, optionalAuth)
	carts.POST("/clear", h.Cart.ClearCart, optionalAuth)
	carts.POST("/merge", h.Cart.MergeCart, requireAuth)
	carts.POST("/guest-id", h.Cart.NewGuestID)

	// Orders
	orders := api.Group("/order")
	orders.POST("/place-order", h.Order.PlaceOrder, optionalAuth)
	orders.POST("/checkout", h.Order.Checkout, optionalAuth)
	orders.GET("/all-orders", h.Order.ListOrders, requireAuth, RequireAdmin)
	orders.GET("/my-orders", h.Order.MyOrders, requireAuth)
	orders.GET("/:id", h.Order.GetOrder, requireAuth)
	orders.PUT("/update-status/:id", h.Order.UpdateStatus, requireAuth, RequireAdmin)
	orders.DELETE("/delete/:id", h.Order.DeleteOrder, requireAuth, RequireAdmin)

	// Contact form
	contact := api.Group("/contact")
	contact.POST("/send-message", h.Contact.SendMessage, optionalAuth)
	contact.GET("/all-messages", h.Contact.ListMessages, requireAuth, RequireAdmin)
	contact.GET("/:id", h.Contact.GetMessage, requireAuth, RequireAdmin)
	contact.DELETE("/delete/:id", h.Contact.DeleteMessage, requireAuth, RequireAdmin)

	if graphql != nil {
		e.POST("/graphql", echo.WrapHandler(graphql), optionalAuth)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
