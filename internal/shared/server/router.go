package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "tradecase-backend/internal/auth"
	"tradecase-backend/internal/casedocs"
	"tradecase-backend/internal/cases"
	"tradecase-backend/internal/gendocs"
	"tradecase-backend/internal/notify"
	"tradecase-backend/internal/shared/config"
	"tradecase-backend/internal/shared/server/middleware"
	"tradecase-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router registers.
type RouterDeps struct {
	Config        config.Config
	GoogleAuth    *googleauth.GoogleService
	Cases         *cases.Handler
	Evidence      *casedocs.Handler
	Documents     *gendocs.Handler
	Notifications *notify.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)

	if deps.Cases != nil {
		deps.Cases.RegisterRoutes(api)
	}
	if deps.Evidence != nil {
		deps.Evidence.RegisterRoutes(api)
	}
	if deps.Documents != nil {
		deps.Documents.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	if deps.Documents != nil {
		deps.Documents.RegisterAdminRoutes(admin)
	}
	if deps.Notifications != nil {
		deps.Notifications.RegisterAdminRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
