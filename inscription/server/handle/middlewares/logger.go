package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/log"
)

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		c.Next()
		if raw != "" {
			path = path + "?" + raw
		}
		log.Srv.Infof("method: %s, path: %s, status: %d, latency: %s, client_ip: %s, error_message: %s, body_size: %d",
			c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP(), c.Errors.ByType(gin.ErrorTypePrivate).String(), c.Writer.Size())
	}
}

// Recovery answers 500 when a handler panics.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Srv.Errorf("panic serving %s: %v", c.Request.URL.Path, err)
		c.AbortWithStatus(500)
	})
}
