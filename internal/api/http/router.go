package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-response/internal/api/http/handlers"
	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Agents         *handlers.AgentsHandler
	Responders     *handlers.RespondersHandler
	Categories     *handlers.CategoriesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/login", cfg.Users.Login)
	authGroup.Post("/users/register",
		cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleAdmin), cfg.Users.Register)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", auth.RequireKind(domain.ActorKindUser), cfg.Users.Me)
	users.Get("/", auth.RequireRoles(domain.RoleAdmin), cfg.Users.List)
	users.Patch("/:id/status", auth.RequireRoles(domain.RoleAdmin), cfg.Users.SetStatus)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", auth.RequireAuthenticated(), cfg.Tickets.CreateTicket)
	tickets.Get("/", auth.RequireAuthenticated(), cfg.Tickets.ListTickets)
	tickets.Get("/escalations", auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin), cfg.Tickets.EscalationHistory)
	tickets.Get("/:ticketId", auth.RequireAuthenticated(), cfg.Tickets.GetTicket)
	tickets.Get("/:ticketId/lifecycle", auth.RequireAuthenticated(), cfg.Tickets.GetLifecycle)
	tickets.Patch("/:ticketId/start-analysis",
		auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin), cfg.Tickets.StartAnalysis)
	tickets.Patch("/:ticketId/assign",
		auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin), cfg.Tickets.AssignTicket)
	tickets.Patch("/:ticketId/reassign",
		auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin), cfg.Tickets.ReassignTicket)
	tickets.Patch("/:ticketId/start-responding",
		auth.RequireKind(domain.ActorKindResponder), cfg.Tickets.StartResponding)
	tickets.Patch("/:ticketId/escalate",
		auth.RequireKind(domain.ActorKindResponder), cfg.Tickets.EscalateTicket)
	tickets.Patch("/:ticketId/resolve",
		auth.RequireKind(domain.ActorKindResponder), cfg.Tickets.ResolveTicket)
	tickets.Patch("/:ticketId/close",
		auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin), cfg.Tickets.CloseTicket)

	agents := app.Group("/agents", cfg.AuthMiddleware.Handle,
		auth.RequireRoles(domain.RoleAdmin, domain.RoleAgentAdmin))
	agents.Post("/", cfg.Agents.Enroll)
	agents.Get("/", cfg.Agents.List)
	agents.Get("/:agentId", cfg.Agents.Get)
	agents.Post("/:agentId/token", cfg.Agents.ReissueToken)
	agents.Patch("/:agentId/active", cfg.Agents.SetActive)

	responders := app.Group("/responders", cfg.AuthMiddleware.Handle)
	responders.Post("/heartbeat", auth.RequireKind(domain.ActorKindResponder), cfg.Responders.Heartbeat)
	admin := auth.RequireRoles(domain.RoleAdmin, domain.RoleResponderAdmin)
	responders.Post("/", admin, cfg.Responders.Create)
	responders.Get("/", admin, cfg.Responders.List)
	responders.Get("/:responderId", admin, cfg.Responders.Get)
	responders.Post("/:responderId/token", admin, cfg.Responders.ReissueToken)
	responders.Patch("/:responderId", admin, cfg.Responders.Update)

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Get("/", auth.RequireAuthenticated(), cfg.Categories.ListCategories)
	categories.Get("/:categoryId/sub-categories", auth.RequireAuthenticated(), cfg.Categories.ListSubCategories)
	categories.Post("/", auth.RequireRoles(domain.RoleAdmin), cfg.Categories.CreateCategory)
	categories.Post("/:categoryId/sub-categories", auth.RequireRoles(domain.RoleAdmin), cfg.Categories.CreateSubCategory)
}
