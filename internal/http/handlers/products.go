package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"productstudio/internal/domain"
	"productstudio/internal/fulfillment"
)

// SKUs arrive as JSON numbers or numeric strings depending on the client.
type updateProductImageRequest struct {
	SKU          any    `json:"sku"`
	ImageType    string `json:"imageType"`
	ImageDataURL string `json:"imageDataUrl"`
}

type updateProductDescriptionRequest struct {
	SKU         any    `json:"sku"`
	DescType    string `json:"descType"`
	Description string `json:"description"`
}

type productResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
}

func parseSKU(v any) (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: sku is required", domain.ErrInvalidInput)
	}
	sku, err := cast.ToInt64E(v)
	if err != nil || sku <= 0 {
		return 0, fmt.Errorf("%w: sku must be a positive integer", domain.ErrInvalidInput)
	}
	return sku, nil
}

// UpdateProductImage handles POST /api/update-product-image.
func (a *App) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	var req updateProductImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "invalid payload")
		return
	}
	sku, err := parseSKU(req.SKU)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	product, err := a.Products.SaveImage(r.Context(), fulfillment.SaveImageRequest{
		SKU:          sku,
		ImageType:    req.ImageType,
		ImageDataURL: req.ImageDataURL,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, productResponse{
		Message: fmt.Sprintf("%s image saved for SKU %d", req.ImageType, sku),
		Product: product,
	})
}

// UpdateProductDescription handles POST /api/update-product-description.
func (a *App) UpdateProductDescription(w http.ResponseWriter, r *http.Request) {
	var req updateProductDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_input", "invalid payload")
		return
	}
	sku, err := parseSKU(req.SKU)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	product, err := a.Products.SaveDescription(r.Context(), fulfillment.SaveDescriptionRequest{
		SKU:         sku,
		DescType:    req.DescType,
		Description: req.Description,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, productResponse{
		Message: fmt.Sprintf("%s description saved for SKU %d", req.DescType, sku),
		Product: product,
	})
}

// GetProduct handles GET /api/products/{sku}.
func (a *App) GetProduct(w http.ResponseWriter, r *http.Request) {
	sku, err := parseSKU(chi.URLParam(r, "sku"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	product, err := a.Products.Product(r.Context(), sku)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, product)
}
