package response

import (
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error aborts the request with the status and body derived from err.
// Server-side failures are logged; details are only exposed in debug mode.
func Error(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	if ce.Status >= 500 {
		common.LogError("Request failed",
			zap.Error(err),
			zap.String("code", ce.Code),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, common.ErrorBody(err, gin.IsDebugging()))
}
