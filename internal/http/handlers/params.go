package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryID parses a positive integer query parameter.
func queryID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return v, true
}

// optionalInt parses an optional integer query parameter; absent yields nil.
func optionalInt(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		badRequest(c, name+" must be a non-negative integer")
		return nil, false
	}
	return &v, true
}
