package middleware

import (
	"fmt"
	"net/http"

	"recipe-finder/internal/api/response"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BodySizeLimit rejects declared oversize bodies and caps reads for the rest
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			response.Error(c, common.NewError(common.ErrCodeEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxSize), http.StatusRequestEntityTooLarge, nil))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
