package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SscSPs/financeflow/internal/apperrors"
)

// abortUnauthorized records an ErrUnauthorized AppError on the request and stops the chain.
func abortUnauthorized(c *gin.Context, message string) {
	appErr := apperrors.NewAppError(http.StatusUnauthorized, message, apperrors.ErrUnauthorized)
	_ = c.Error(appErr)
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// AuthMiddleware creates a Gin middleware handler that validates HMAC-signed JWT bearer tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve logger from the standard context
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			abortUnauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid", "header", authHeader)
			abortUnauthorized(c, "Authorization header format must be Bearer {token}")
			return
		}

		tokenString := parts[1]

		// Parse and validate the token
		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			// Check the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			abortUnauthorized(c, msg)
			return
		}

		if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
			subject := claims.Subject
			if subject == "" {
				logger.Error("Subject missing from valid token")
				abortUnauthorized(c, "Invalid token claims")
				return
			}

			// Store the subject in the context (using standard context)
			ctx := context.WithValue(c.Request.Context(), subjectKey, subject)

			// Store the enriched logger back into the standard context
			ctx = WithLogger(ctx, logger.With(slog.String("subject", subject)))

			c.Request = c.Request.WithContext(ctx)
			c.Next()
		} else {
			logger.Warn("Invalid token claims or token is not valid")
			abortUnauthorized(c, "Invalid token")
		}
	}
}
