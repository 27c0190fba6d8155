package handlers

import (
	"github.com/rohanthewiz/rweb"

	"precisionturn/web"
)

// SetupRoutes configures all HTTP routes for the server
func SetupRoutes(s *rweb.Server) {
	// Root endpoint - serves the dashboard UI
	s.Get("/", rootHandler)

	// Plan endpoints
	s.Get("/api/plans", listPlansHandler)
	s.Get("/api/plans/:id", getPlanHandler)
	s.Post("/api/plans/generate", generatePlanHandler)
	s.Put("/api/plans/:id", updatePlanHandler)
	s.Delete("/api/plans/:id", deletePlanHandler)

	// Knowledge base (RAG) endpoints
	s.Post("/api/rag/query", ragQueryHandler)
	s.Get("/api/rag/stream", ragStreamHandler)

	// App info
	s.Get("/api/app", appInfoHandler)
}

// rootHandler serves the dashboard UI
func rootHandler(c rweb.Context) error {
	return web.DashboardHandler(c)
}

// appInfoHandler returns application information
func appInfoHandler(c rweb.Context) error {
	return c.WriteJSON(map[string]interface{}{
		"name":    "precisionturn",
		"version": "0.1.0",
		"status":  "ok",
	})
}
