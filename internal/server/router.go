package server

import (
	"net/http"

	"suplementi-be/internal/logger"
	"suplementi-be/internal/metrics"
	"suplementi-be/internal/middleware"
	"suplementi-be/internal/order"
	"suplementi-be/internal/product"
	"suplementi-be/internal/user"
	"suplementi-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func NewRouter(orderSvc order.Service, productSvc product.Service, userSvc user.Service) http.Handler {
	orderH := NewOrderHandler(orderSvc)
	productH := NewProductHandler(productSvc)
	authH := NewAuthHandler(userSvc)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.StrictRateLimit)
			r.Post("/login", authH.Login)
			r.Post("/resend-verification", authH.ResendVerification)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.GeneralRateLimit)
			r.Use(middleware.RequireAdmin)

			r.Get("/orders", orderH.List)
			r.Get("/orders/{id}", orderH.Detail)
			r.Patch("/orders/{id}/status", orderH.ChangeStatus)

			r.Get("/products", productH.List)
			r.Get("/products/{id}", productH.Get)
			r.Patch("/products/{id}/stock", productH.AdjustStock)

			r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
				utils.WriteJSON(w, http.StatusOK, metrics.Snapshot())
			})
		})
	})

	return r
}
