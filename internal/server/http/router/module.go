package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Module registers HTTP router construction for fx runtime and exposes the
// engine as the server handler.
var Module = fx.Provide(
	Setup,
	func(engine *gin.Engine) http.Handler { return engine },
)
