package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const deviceIDKey = "deviceID"

// deviceTokenMiddleware authenticates the bearer token and stores the bound
// device id in the request context. Websocket clients cannot set headers,
// so a ?token= query parameter is accepted as a fallback.
func (h *Handler) deviceTokenMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "access token required",
		})
		return
	}

	deviceID, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(deviceIDKey, deviceID)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

// scopedDeviceID enforces that the device_id named in the request equals
// the token's bound device. Cross-device reads are rejected regardless of
// token validity. Returns ("", false) when the request was already handled.
func (h *Handler) scopedDeviceID(c *gin.Context) (string, bool) {
	tokenDevice := c.GetString(deviceIDKey)
	requested := c.Query("device_id")
	if requested == "" || requested != tokenDevice {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "unauthorized device access",
		})
		return "", false
	}
	return requested, true
}
