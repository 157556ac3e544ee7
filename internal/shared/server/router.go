package server

import (
	"github.com/gin-gonic/gin"

	"docintake-backend/internal/config"
	"docintake-backend/internal/documents"
	"docintake-backend/internal/shared/server/middleware"
)

// RouterDeps carries the handlers the router registers.
type RouterDeps struct {
	Config    config.Config
	Documents *documents.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	deps.Documents.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
