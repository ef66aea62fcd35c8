package mockapi

import (
	"github.com/RsrchBoy/github-authorization/internal/mockapi/db"
	"github.com/RsrchBoy/github-authorization/internal/mockapi/handler"
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the Gin router with all routes.
func NewRouter(store *db.Store, cfg *Config) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	// The endpoint the client library talks to, shaped like the real API.
	r.POST("/authorizations", handler.HandleCreateAuthorization(store))

	// Seeding/inspection endpoints for tests and local development.
	admin := AdminAuth(cfg.AdminToken)
	mock := r.Group("/mock")
	{
		mock.POST("/users", admin, handler.HandleCreateUser(store))
		mock.GET("/users/:login/authorizations", admin, handler.HandleListAuthorizations(store))
	}

	return r
}
