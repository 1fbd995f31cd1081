package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func setupAuthRouter(issuer string) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, issuer))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": c.GetString(userIDKey)})
	})
	return r
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, &JWTClaims{RegisteredClaims: claims}).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func validClaims() jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   "owner-123",
		Issuer:    "stonkers-auth",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
	}
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_token_sets_owner", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
		rec := doAuthRequest(setupAuthRouter(""), "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		body := parseBody(t, rec)
		if body["owner"] != "owner-123" {
			t.Errorf("expected owner owner-123, got %v", body["owner"])
		}
	})

	t.Run("issuer_checked_when_configured", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

		if rec := doAuthRequest(setupAuthRouter("stonkers-auth"), "Bearer "+token); rec.Code != http.StatusOK {
			t.Errorf("expected status 200 for matching issuer, got %d", rec.Code)
		}
		if rec := doAuthRequest(setupAuthRouter("someone-else"), "Bearer "+token); rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401 for foreign issuer, got %d", rec.Code)
		}
	})

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{"missing_header", func(t *testing.T) string { return "" }},
		{"wrong_scheme", func(t *testing.T) string {
			return "Basic " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())
		}},
		{"empty_token", func(t *testing.T) string { return "Bearer " }},
		{"malformed_token", func(t *testing.T) string { return "Bearer not-a-jwt" }},
		{"wrong_secret", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims())
		}},
		{"wrong_algorithm", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())
		}},
		{"expired_token", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired)
		}},
		{"missing_subject", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(setupAuthRouter(""), tt.header(t))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
			body := parseBody(t, rec)
			errObj, ok := body["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected error object in response")
			}
			if code, _ := errObj["code"].(string); code != "UNAUTHORIZED" {
				t.Errorf("expected code UNAUTHORIZED, got %q", code)
			}
		})
	}
}
