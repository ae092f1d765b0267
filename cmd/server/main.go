package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storefront/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/gql"
	"storefront/internal/handler"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Storefront API
// @version 1.0
// @description Storefront API with catalog, guest and user carts, orders, contact messages and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	repos, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}
	defer closeStore()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unavailable, continuing without cache: %v", err)
	}
	defer cacheClient.Close()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore)
	userService := service.NewUserService(repos.Users, cacheClient)
	productService := service.NewProductService(repos.Products, cacheClient)
	cartService := service.NewCartService(repos.Carts, repos.Products)
	orderService := service.NewOrderService(repos.Orders, repos.Products, repos.Users, cartService)
	contactService := service.NewContactService(repos.Contacts)

	graphqlHandler, err := gql.NewHandler(gql.Services{
		Auth:     authService,
		Users:    userService,
		Products: productService,
		Carts:    cartService,
		Orders:   orderService,
		Contacts: contactService,
	})
	if err != nil {
		log.Fatalf("graphql schema: %v", err)
	}

	e := echo.New()
	router.Register(
		e,
		cfg,
		router.NewAuthenticator(jwtService, tokenStore),
		router.Handlers{
			Auth:    handler.NewAuthHandler(authService, userService, cartService),
			User:    handler.NewUserHandler(userService),
			Product: handler.NewProductHandler(productService),
			Seed:    handler.NewSeedHandler(productService),
			Cart:    handler.NewCartHandler(cartService),
			Order:   handler.NewOrderHandler(orderService),
			Contact: handler.NewContactHandler(contactService),
		},
		graphqlHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		swaggerURL = cfg.SwaggerHost
		if !strings.HasPrefix(swaggerURL, "http://") && !strings.HasPrefix(swaggerURL, "https://") {
			swaggerURL = "http://" + swaggerURL
		}
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerURL)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
