package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/bookshelf-labs/book-service/internal/api/http/handlers"
	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Books          *handlers.BooksHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// Route describes one endpoint. RequiresAuth puts the bearer token check in front of Handler.
type Route struct {
	Name         string
	Method       string
	Path         string
	Handler      fiber.Handler
	RequiresAuth bool
}

// Routes returns the route table in registration order.
// Literal /books/... paths precede /books/:id so they are not captured as ids.
func Routes(cfg RouteConfig) []Route {
	return []Route{
		{Name: "Greet", Method: fiber.MethodGet, Path: "/", Handler: cfg.Health.Root},
		{Name: "Live", Method: fiber.MethodGet, Path: "/health/live", Handler: cfg.Health.Live},
		{Name: "Ready", Method: fiber.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready},
		{Name: "Metrics", Method: fiber.MethodGet, Path: "/metrics", Handler: adaptor.HTTPHandler(cfg.Metrics.Handler())},

		{Name: "GetAllBooks", Method: fiber.MethodGet, Path: "/books", Handler: cfg.Books.List},
		{Name: "AddNewBook", Method: fiber.MethodPost, Path: "/books", Handler: cfg.Books.Create},
		{Name: "UpdateBook", Method: fiber.MethodPut, Path: "/books", Handler: cfg.Books.Update},
		{Name: "Search", Method: fiber.MethodGet, Path: "/books/search/:query", Handler: cfg.Books.Search},
		{Name: "GetBooksByPage", Method: fiber.MethodGet, Path: "/books/bypage", Handler: cfg.Books.ByPage},
		{Name: "GetBookbyId", Method: fiber.MethodGet, Path: "/books/:id", Handler: cfg.Books.Get},

		{Name: "Login", Method: fiber.MethodPost, Path: "/auth/token", Handler: cfg.Auth.Token},
		{Name: "Authorized", Method: fiber.MethodGet, Path: "/AuthorizedResource", Handler: cfg.Auth.AuthorizedResource, RequiresAuth: true},
	}
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	for _, route := range Routes(cfg) {
		chain := make([]fiber.Handler, 0, 2)
		if route.RequiresAuth {
			chain = append(chain, cfg.AuthMiddleware.Handle)
		}
		chain = append(chain, route.Handler)
		app.Add(route.Method, route.Path, chain...).Name(route.Name)
	}
}
