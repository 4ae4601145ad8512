package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the public error payload. Fields carries the per-field
// validation messages on 422 responses and is omitted everywhere else.
type Response struct {
	Status int               `json:"-"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, fields map[string]string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{
		Status: status,
		Error:  msg,
		Fields: fields,
	}

	// Attach as *gin.Error: a value would be re-wrapped private and lose Meta.
	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(status, resp)
}
