package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/storage"
)

//go:embed products.json
var sampleCatalog []byte

const fetchTimeout = 15 * time.Second

func main() {
	catalogURL := flag.String("url", "", "fetch the product catalog from this url instead of the bundled sample")
	skipProducts := flag.Bool("admin-only", false, "seed the admin account only")
	flag.Parse()

	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	ctx := context.Background()
	repos, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()
	log.Printf("Connected to %s store", cfg.StoreDriver)

	created, err := seedAdmin(ctx, repos.Users)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	if created {
		log.Println("Admin account created")
	} else {
		log.Println("Admin account already exists, promoted if needed")
	}

	if *skipProducts {
		return
	}

	raw := sampleCatalog
	if *catalogURL != "" {
		log.Printf("Fetching products from: %s", *catalogURL)
		if raw, err = fetchCatalog(*catalogURL); err != nil {
			log.Fatalf("Failed to fetch products: %v", err)
		}
	}

	var inputs []service.ProductInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Fatalf("Failed to parse products: %v", err)
	}

	products := service.NewProductService(repos.Products, nil)
	count, err := products.ImportProducts(ctx, inputs)
	if err != nil {
		log.Fatalf("Failed to seed products after %d: %v", count, err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Products created: %d", count)
}

// seedAdmin creates the admin from ADMIN_EMAIL/ADMIN_PASSWORD, or promotes an
// existing account with that email.
func seedAdmin(ctx context.Context, users repository.UserRepository) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return false, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	fullname := os.Getenv("ADMIN_FULLNAME")
	if fullname == "" {
		fullname = "Store Admin"
	}

	existing, err := users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("error checking admin %s: %w", email, err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			if _, err := users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				return false, fmt.Errorf("error promoting admin %s: %w", email, err)
			}
		}
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	admin := &model.User{
		ID:           model.NewID(),
		Fullname:     fullname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("error creating admin %s: %w", email, err)
	}
	return true, nil
}

// fetchCatalog downloads a JSON array of products.
func fetchCatalog(url string) ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
