package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"lendhub/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller's identity. Authentication happens upstream;
// this service trusts the gateway.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "sharer_user_id"

var (
	errMissingUserHeader = errors.New("missing " + UserIDHeader + " header")
	errInvalidUserHeader = errors.New("invalid " + UserIDHeader + " header")
)

// RequireUser rejects requests without a usable identity header.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingUserHeader, "Missing "+UserIDHeader+" header", nil)
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidUserHeader, "Invalid "+UserIDHeader+" header", nil)
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
