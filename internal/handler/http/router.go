package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/smash-arena/pos-terminal/internal/handler/http/middleware"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
)

// RouterConfig carries the pieces of configuration the router needs
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, posHandler POSHandler, bookingHandler BookingHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Event stream; EventSource passes the token as a query parameter
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, middleware.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireAdmin(JWTService))

			r.Get("/pos/events", posHandler.Events)
		})

		// Requires an admin session
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.RequireAdmin(JWTService))

			r.Route("/pos", func(r chi.Router) {
				r.Route("/shift", func(r chi.Router) {
					r.Get("/", posHandler.ShiftStatus)
					r.Post("/open", posHandler.OpenShift)
					r.Post("/close", posHandler.CloseShift)
					r.Get("/history", posHandler.ShiftHistory)
				})

				r.Route("/catalog", func(r chi.Router) {
					r.Get("/", posHandler.Catalog)
					r.Post("/reload", posHandler.ReloadCatalog)
				})

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", posHandler.Cart)
					r.Delete("/", posHandler.ClearCart)
					r.Post("/items", posHandler.AddItem)
					r.Patch("/items/{productID}", posHandler.ChangeQuantity)
					r.Delete("/items/{productID}", posHandler.RemoveItem)
				})

				r.Route("/checkout", func(r chi.Router) {
					r.Post("/confirm", posHandler.Confirm)
					r.Post("/execute", posHandler.Execute)
					r.Delete("/", posHandler.CancelCheckout)
				})

				r.Get("/change", posHandler.ChangeDue)
				r.Get("/print", posHandler.Print)
			})

			r.Route("/bookings/{id}", func(r chi.Router) {
				r.Post("/settle", bookingHandler.Settle)
				r.Get("/receipt", bookingHandler.Receipt)
			})
		})
	})

	return r
}
