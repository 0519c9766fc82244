package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandlePanics converts a recovered panic into a JSON 500 so one bad request
// cannot take the server down.
func HandlePanics() gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		} else {
			log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
	}
}
