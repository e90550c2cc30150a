package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/poskit/cashier/internal/http/handlers"
)

// NewRouter wires the POS API: a public login route, swagger UI, and the
// authenticated catalog and ledger routes.
func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", handlers.LoginHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.Use(RateLimitMiddleware)

		r.Get("/products", handlers.GetProductsHandler)
		r.Post("/products", handlers.AddProductHandler)
		r.Put("/products", handlers.EditProductHandler)
		r.Post("/products/delete", handlers.DeleteProductHandler)

		r.Post("/sales", handlers.SaveSaleHandler)
		r.Get("/sales", handlers.GetSalesHandler)
	})

	return r
}
