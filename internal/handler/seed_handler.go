package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/service"
)

// SeedHandler handles bulk catalog imports.
type SeedHandler struct {
	productService service.ProductService
	client         *http.Client
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(productService service.ProductService) *SeedHandler {
	return &SeedHandler{
		productService: productService,
		client:         &http.Client{Timeout: 15 * time.Second},
	}
}

// ImportProductsRequest carries products inline or a URL serving a JSON array of them.
type ImportProductsRequest struct {
	URL      string                 `json:"url,omitempty"`
	Products []service.ProductInput `json:"products,omitempty"`
}

// ImportProductsResponse represents the import result.
type ImportProductsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ImportProducts godoc
// @Summary Bulk import products
// @Description Imports the inline products, or fetches a JSON array of products from url.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImportProductsRequest true "Products or source URL"
// @Success 201 {object} ImportProductsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /product/import [post]
func (h *SeedHandler) ImportProducts(c echo.Context) error {
	var req ImportProductsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	products := req.Products
	if req.URL != "" {
		fetched, err := h.fetchProducts(req.URL)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "IMPORT_FETCH_FAILED",
			})
		}
		products = append(products, fetched...)
	}
	if len(products) == 0 {
		return badRequest("NOTHING_TO_IMPORT", "no products to import")
	}

	count, err := h.productService.ImportProducts(c.Request().Context(), products)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, ImportProductsResponse{
		Message: "Products imported successfully",
		Count:   count,
	})
}

// fetchProducts fetches a JSON array of products from url.
func (h *SeedHandler) fetchProducts(url string) ([]service.ProductInput, error) {
	resp, err := h.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var products []service.ProductInput
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return products, nil
}
