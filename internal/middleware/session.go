package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fleet_board/internal/config"
	"fleet_board/internal/models"
)

const sessionKey = "session"

// Session is the request-scoped identity, resolved exactly once per
// request by ResolveSession. Handlers read it instead of re-querying the
// profile row ad hoc.
type Session struct {
	UserID            uint
	Email             string
	Role              string
	AssignedTOB       string
	AssignedVehicleID *uint
}

// ResolveSession loads the authenticated user's profile and stores a
// Session in the gin context. Runs after RequireAuth. A credential with
// no profile row is denied here.
func ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := uint(c.MustGet("user_id").(float64))

		var user models.User
		if err := config.DB.Preload("Profile").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session: " + err.Error()})
			}
			return
		}
		if user.Profile == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No profile is associated with this account. Contact an administrator."})
			return
		}

		c.Set(sessionKey, &Session{
			UserID:            user.ID,
			Email:             user.Email,
			Role:              user.Profile.Role,
			AssignedTOB:       user.Profile.AssignedTOB,
			AssignedVehicleID: user.Profile.AssignedVehicleID,
		})
		c.Next()
	}
}

// CurrentSession returns the Session placed by ResolveSession.
func CurrentSession(c *gin.Context) *Session {
	return c.MustGet(sessionKey).(*Session)
}

// RequireRole denies the request unless the resolved session carries one
// of the given roles. The denial is explicit, not silently hidden.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		for _, r := range roles {
			if sess.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: your role does not permit this page"})
	}
}
