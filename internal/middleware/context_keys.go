package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// GetSubjectFromContext retrieves the authenticated token subject from the Gin context.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	return GetSubjectFromCtx(c.Request.Context())
}

// GetSubjectFromCtx retrieves the authenticated token subject from a standard context.
func GetSubjectFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
