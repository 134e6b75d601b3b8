package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bigbang-server/internal/shared/errors"
	"bigbang-server/internal/shared/response"

	"github.com/golang-jwt/jwt/v5"
)

const RoleOperator = "operator"

type contextKey string

const OperatorContextKey contextKey = "operator"

type OperatorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueOperatorToken signs an HS256 token carrying the operator role.
func IssueOperatorToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := OperatorClaims{
		Role: RoleOperator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateOperatorToken(secret, tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// RequireOperator admits requests bearing a valid token with the operator role.
func RequireOperator(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "operator_auth",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing operator authentication")

			tokenString, ok := bearerToken(r)
			if !ok {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := ValidateOperatorToken(secret, tokenString)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			if claims.Role != RoleOperator {
				logger.Warn("Non-operator token used on operator endpoint",
					"subject", claims.Subject,
					"role", claims.Role)
				response.Error(w, r, logger, errors.Forbidden("operator access required"))
				return
			}

			ctx := context.WithValue(r.Context(), OperatorContextKey, claims)
			logger.Debug("Operator authentication successful", "subject", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorFromContext returns the claims stored by RequireOperator.
func GetOperatorFromContext(r *http.Request) *OperatorClaims {
	if claims, ok := r.Context().Value(OperatorContextKey).(*OperatorClaims); ok {
		return claims
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
