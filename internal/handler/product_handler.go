package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Message string         `json:"message"`
	Product *model.Product `json:"product"`
}

// ProductsResponse wraps a product listing.
type ProductsResponse struct {
	Message  string          `json:"message"`
	Products []model.Product `json:"products"`
}

// CategoriesResponse lists the distinct categories.
type CategoriesResponse struct {
	Message    string   `json:"message"`
	Categories []string `json:"categories"`
}

// AddProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProductInput true "Product data"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /product/addproduct [post]
func (h *ProductHandler) AddProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ProductResponse{
		Message: "Product added successfully",
		Product: product,
	})
}

// ListProducts godoc
// @Summary List products
// @Description Newest first, optionally filtered by category.
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Success 200 {object} ProductsResponse
// @Router /product/all-products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProductsResponse{
		Message:  "Products fetched successfully",
		Products: products,
	})
}

// Categories godoc
// @Summary List categories
// @Tags products
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Router /product/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.productService.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, CategoriesResponse{
		Message:    "Categories fetched successfully",
		Categories: categories,
	})
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProductResponse{
		Message: "Product fetched successfully",
		Product: product,
	})
}

// UpdateProduct godoc
// @Summary Replace a product's editable fields
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body service.ProductInput true "Product data"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product/update-product/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProductResponse{
		Message: "Product updated successfully",
		Product: product,
	})
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /product/del-product/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productService.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
}
