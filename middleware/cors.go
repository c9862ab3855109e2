package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns the cross-origin policy for the environment. Development
// admits any origin; production only admits origins on .inletsites.dev
// subdomains. Credentials are allowed in both so the vendor session
// cookie travels from the browser frontend.
func CORS(env string) gin.HandlerFunc {
	allowOrigin := func(string) bool { return true }
	if env == "production" {
		allowOrigin = func(origin string) bool {
			return strings.HasSuffix(origin, ".inletsites.dev")
		}
	}

	return cors.New(cors.Config{
		AllowOriginFunc:  allowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
