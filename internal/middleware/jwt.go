package middleware

import (
	"errors"
	"net/http"
	"strings"

	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// GenerateToken issues a session token for an authenticated user.
func GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateDeviceToken mints the short-lived token embedded in a vehicle's
// QR code. It carries a purpose claim and the vehicle binding; it is only
// accepted by the device-login exchange, never as a session token.
func GenerateDeviceToken(userID, vehicleID uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"vehicle_id": vehicleID,
		"purpose":    "device_login",
		"exp":        time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseDeviceToken validates a device-login token and returns the bound
// user and vehicle ids.
func ParseDeviceToken(tokenStr string) (userID, vehicleID uint, err error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, errors.New("invalid or expired device token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, errors.New("invalid device token claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "device_login" {
		return 0, 0, errors.New("token is not a device-login token")
	}
	uid, ok1 := claims["user_id"].(float64)
	vid, ok2 := claims["vehicle_id"].(float64)
	if !ok1 || !ok2 {
		return 0, 0, errors.New("invalid device token claims")
	}
	return uint(uid), uint(vid), nil
}

// RequireAuth ensures a valid JWT is present and stores its claims in the
// gin context for the session resolver.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		if purpose, _ := claims["purpose"].(string); purpose != "" {
			// Device-login tokens are exchange-only.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not valid for API access"})
			return
		}
		c.Set("user_id", claims["user_id"])
		c.Set("role", claims["role"])

		c.Next()
	}
}
