package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-document-service/http/controller"
	middlewares "github.com/tnqbao/gau-document-service/http/middleware"
)

// SetupRouter wires the engine. Collections are not pre-declared, so there
// is no per-collection route table: everything that is not the health check
// falls through to the document controller, which interprets the path
// itself.
func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.NoRoute(ctrl.HandleDocument)

	return r
}
