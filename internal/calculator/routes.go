package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", svc.Evaluate)

		r.Post("/sessions", svc.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", svc.GetSession)
			r.Delete("/", svc.DeleteSession)
			r.Post("/keys", svc.PressKeys)
			r.Get("/history", svc.GetHistory)
			r.Delete("/history", svc.ClearHistory)
		})
	})
}
