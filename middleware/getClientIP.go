package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP resolves the caller's address behind the usual proxy headers.
// Cloudflare's header wins, then X-Forwarded-For (first hop), then
// X-Real-IP, then the socket address.
func ClientIP(c *gin.Context) string {
	if cf := c.GetHeader("CF-Connecting-IP"); cf != "" {
		return strings.TrimSpace(cf)
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 && ips[0] != "" {
			return strings.TrimSpace(ips[0])
		}
	}
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}
