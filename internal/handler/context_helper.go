package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery parses an integer query parameter, returning the fallback when the
// parameter is missing or malformed.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
