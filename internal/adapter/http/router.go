package http

import (
	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Base         *Handler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Uploads      *UploadHandler
	Children     *ChildHandler
	Webhooks     *WebhookHandler
	Auth         *AuthHandler
}

// RouteMiddleware holds the per-route guards. A nil entry is skipped.
type RouteMiddleware struct {
	Admin              echo.MiddlewareFunc
	Idempotency        echo.MiddlewareFunc
	WebhookSignature   echo.MiddlewareFunc
	WebhookIdempotency echo.MiddlewareFunc
	LoginRateLimit     echo.MiddlewareFunc
	UploadBodyLimit    echo.MiddlewareFunc
}

func chain(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, m := range mws {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func RegisterRoutes(e *echo.Echo, h Handlers, m RouteMiddleware) {
	e.GET("/health", h.Base.Health)

	api := e.Group("/api")

	// public
	api.GET("/jobs", h.Jobs.ListJobs)
	api.GET("/jobs/stats", h.Jobs.Stats)
	api.GET("/jobs/:idOrSlug", h.Jobs.GetJob)
	api.GET("/job-categories", h.Jobs.ListCategories)
	api.POST("/applications", h.Applications.Submit, chain(m.Idempotency)...)
	api.POST("/uploads/documents", h.Uploads.UploadDocument, chain(m.UploadBodyLimit)...)
	api.GET("/children", h.Children.ListChildren)
	api.GET("/children/:id", h.Children.GetChild)
	api.GET("/donations/config", h.Base.DonationConfig)
	api.POST("/webhooks/donations", h.Webhooks.Donation, chain(m.WebhookSignature, m.WebhookIdempotency)...)

	// admin session
	api.POST("/admin/login", h.Auth.Login, chain(m.LoginRateLimit)...)
	api.POST("/admin/verify", h.Auth.Verify, chain(m.LoginRateLimit)...)

	admin := api.Group("/admin", chain(m.Admin)...)
	admin.GET("/jobs", h.Jobs.AdminListJobs)
	admin.POST("/jobs", h.Jobs.CreateJob)
	admin.GET("/jobs/:idOrSlug", h.Jobs.AdminGetJob)
	admin.PUT("/jobs/:id", h.Jobs.UpdateJob)
	admin.DELETE("/jobs/:id", h.Jobs.ArchiveJob)
	admin.POST("/job-categories", h.Jobs.CreateCategory)

	admin.GET("/applications", h.Applications.List)
	admin.GET("/applications/:id", h.Applications.Get)
	admin.PATCH("/applications/:id", h.Applications.Review)

	admin.GET("/children", h.Children.AdminListChildren)
	admin.POST("/children", h.Children.CreateChild)
	admin.PUT("/children/:id", h.Children.UpdateChild)
	admin.DELETE("/children/:id", h.Children.ArchiveChild)
	admin.POST("/children/:id/photo", h.Children.UploadPhoto, chain(m.UploadBodyLimit)...)
	admin.GET("/children/:id/sponsorships", h.Children.Ledger)
	admin.POST("/children/:id/sponsorships", h.Children.RecordManual, chain(m.Idempotency)...)
}
