package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	expenseHandler "github.com/Jamessshhh/Expense-Odyssey/internal/http/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/http/importcsv"
)

// New builds the API router. An empty apiSecret disables auth, which is the
// normal mode for a store living on the same machine as its one user.
func New(
	expensesV1 *expenseHandler.Handler,
	importV1 *importcsv.Handler,
	apiSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		if apiSecret != "" {
			r.Use(RequireToken(apiSecret))
		}

		r.Route("/expenses", func(r chi.Router) {
			expensesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
