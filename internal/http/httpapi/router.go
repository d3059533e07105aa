package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"productstudio/internal/http/handlers"
	"productstudio/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	var origins []string
	rateLimit := 0
	if app.Config != nil {
		origins = app.Config.CORSAllowedOrigins
		rateLimit = app.Config.RateLimitPerMin
	}

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(origins),
	)

	r.Get("/healthz", app.Health)
	if app.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(rateLimit, time.Minute))
			r.Post("/generate-image", app.GenerateImage)
			r.Post("/generate-description", app.GenerateDescription)
		})
		r.Post("/update-product-image", app.UpdateProductImage)
		r.Post("/update-product-description", app.UpdateProductDescription)
		r.Get("/products/{sku}", app.GetProduct)
		r.Get("/products/{sku}/images.zip", app.ProductImagesZip)
		r.Get("/images", app.ListImages)
	})

	if app.Config != nil && app.Config.StoragePath != "" {
		prefix := "/" + strings.Trim(app.Config.PublicPathPrefix, "/")
		files := http.StripPrefix(prefix, http.FileServer(http.Dir(app.Config.StoragePath)))
		r.Handle(prefix+"/*", files)
	}

	return r
}
