package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// LegacyAlias marks a route kept for clients of the previous roster API. Responses advertise
// the successor path so those clients can migrate.
func LegacyAlias(successor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		applyHeader(c, "Deprecation", "true")
		if successor != "" {
			applyHeader(c, "Link", fmt.Sprintf(`<%s>; rel="successor-version"`, successor))
		}
		c.Next()
	}
}

func applyHeader(c *gin.Context, key, value string) {
	if c == nil || key == "" || value == "" {
		return
	}
	c.Writer.Header().Set(key, value)
}
