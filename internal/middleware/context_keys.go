package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// ActorHeader names the header carrying the acting user. It is used for audit
// attribution only.
const ActorHeader = "X-User-ID"

// actorKey is the key used to store the acting user's ID in the Gin context.
// Using a custom type prevents collisions.
const actorKey = contextKey("actor")

// ActorMiddleware records the acting user from the X-User-ID header, falling back to
// defaultActor when the header is absent.
func ActorMiddleware(defaultActor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), actorKey, actor))
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(actorKey).(string); ok {
			return v, true
		}
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actor, true
}
