package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"tourguide/internal/container"
)

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are applied before
// mounting this router in main.go.
func SetupRouter(c *container.Container) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/attractions/search", c.CatalogHandler.SearchAttractions)
		r.Get("/attractions/categories", c.CatalogHandler.Categories)

		r.Post("/recommendations", c.RecommendationHandler.Recommend)

		r.Post("/location", c.ProximityHandler.UpdateLocation)
		r.Get("/alerts", c.ProximityHandler.ListAlerts)
		r.Post("/alerts/{alertID}/dismiss", c.ProximityHandler.DismissAlert)
		r.Delete("/alerts", c.ProximityHandler.ClearAlerts)

		r.Post("/chat", c.ConversationHandler.Chat)
		r.Post("/chat/reset", c.ConversationHandler.Reset)
	})

	return r
}
