package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/syndicate-plus/syndicate-service/internal/api/http/handlers"
	"github.com/syndicate-plus/syndicate-service/internal/auth"
	"github.com/syndicate-plus/syndicate-service/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Firms          *handlers.FirmsHandler
	Deals          *handlers.DealsHandler
	Syndicate      *handlers.SyndicateHandler
	Invitations    *handlers.InvitationsHandler
	Documents      *handlers.DocumentsHandler
	Interest       *handlers.InterestHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth", AuthRateLimiter(cfg.RateLimit))
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	api.Post("/interest/register", cfg.Interest.Register)

	protected := api.Group("", APIRateLimiter(cfg.RateLimit), cfg.AuthMiddleware.Handle, auth.RequireFirm())

	firms := protected.Group("/firms")
	firms.Get("/profile/:id", cfg.Firms.GetProfile)
	firms.Put("/profile", cfg.Firms.UpdateProfile)
	firms.Get("/all", cfg.Firms.ListAll)

	deals := protected.Group("/deals")
	deals.Post("/create", cfg.Deals.Create)
	deals.Get("/my-deals", cfg.Deals.ListOwn)
	deals.Get("/invited", cfg.Deals.ListInvited)
	deals.Get("/:id", cfg.Deals.Get)
	deals.Put("/:id", cfg.Deals.Update)

	syndicate := protected.Group("/syndicate")
	syndicate.Post("/recommend", cfg.Syndicate.Recommend)
	syndicate.Post("/build", cfg.Syndicate.Build)

	invitations := protected.Group("/invitations")
	invitations.Post("/send", cfg.Invitations.Send)
	invitations.Post("/respond", cfg.Invitations.Respond)
	invitations.Get("/received", cfg.Invitations.ListReceived)
	invitations.Get("/sent", cfg.Invitations.ListSent)

	documents := protected.Group("/documents")
	documents.Post("/upload/:dealId", cfg.Documents.Upload)
	documents.Get("/deal/:dealId", cfg.Documents.ListForDeal)
	documents.Delete("/:documentId", cfg.Documents.Delete)

	protected.Get("/interest/all", auth.RequireAdmin(), cfg.Interest.ListAll)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/members/firms", cfg.Admin.ListFirms)
	admin.Get("/members/firms/:id", cfg.Admin.GetFirmDetail)
	admin.Patch("/members/firms/:id/status", cfg.Admin.UpdateFirmStatus)
	admin.Get("/analytics/deals", cfg.Admin.AnalyzeDeals)

	superadmin := admin.Group("", auth.RequireSuperadmin())
	superadmin.Patch("/members/firms/:id/role", cfg.Admin.UpdateFirmRole)
	superadmin.Delete("/members/firms/:id", cfg.Admin.DeleteFirm)
}
