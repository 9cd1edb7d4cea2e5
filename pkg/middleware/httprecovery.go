package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HTTPRecovery handles panics raised while handling a request and sets a
// generic 500 response. Internal detail stays in the logs, never in the body.
func HTTPRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Msgf("Panic occurred: %v\n%s", err, debug.Stack())
				c.JSON(500, gin.H{"detail": "internal server error"})
				c.Abort()
			}
		}()
		c.Next()
	}
}
