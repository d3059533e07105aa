package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"productstudio/internal/archive"
	"productstudio/internal/domain"
)

var archivedSlots = []domain.Slot{
	domain.SlotWaxImageURL,
	domain.SlotCastImageURL,
	domain.SlotFinalImageURL,
}

// ProductImagesZip handles GET /api/products/{sku}/images.zip. Slots that are
// empty or point outside the asset store are skipped.
func (a *App) ProductImagesZip(w http.ResponseWriter, r *http.Request) {
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

	var assets []archive.Asset
	for _, slot := range archivedSlots {
		ref := product.Value(slot)
		if ref == "" {
			continue
		}
		key, data, err := a.Assets.ReadURL(ref)
		if errors.Is(err, domain.ErrNotFound) {
			a.Logger.Warn().Int64("sku", sku).Str("slot", string(slot)).Msg("image not in asset store")
			continue
		}
		if err != nil {
			a.fail(w, r, fmt.Errorf("read %s image: %w", slot, err))
			return
		}
		assets = append(assets, archive.Asset{Filename: path.Base(key), Data: data, Modified: product.CreatedAt})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", fmt.Sprintf("SKU %d has no stored images", sku))
		return
	}

	raw, err := archive.Zip(assets)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="product-%d-images.zip"`, sku))
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
