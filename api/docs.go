package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterDocs serves the OpenAPI document from swaggerDir and a swagger UI
// reading it. Skipped when no directory is configured.
func RegisterDocs(router *gin.Engine, swaggerDir string) {
	if swaggerDir == "" {
		return
	}

	router.StaticFS("/swagger", http.Dir(swaggerDir))
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/swagger/tripengine.swagger.json"),
	)))
}
