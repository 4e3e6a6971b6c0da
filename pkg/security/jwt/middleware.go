package jwt

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GateConfig controls which routes the session gate leaves open and where it
// sends unauthenticated clients.
type GateConfig struct {
	// CookieName is the credential carrier; defaults to "token".
	CookieName string
	// LoginPath is the redirect target for unauthenticated requests;
	// defaults to "/auth".
	LoginPath string
	// PublicPrefixes always pass through unchecked. "/" matches only the
	// landing page itself, every other entry matches as a prefix.
	PublicPrefixes []string
}

// NewSessionGate returns a Fiber middleware that gates every non-public route
// behind a valid session token cookie. A missing, malformed, expired or
// tampered token all produce the same navigation redirect to the login path;
// the client is never told which case it hit. On success the verified
// identity is attached to the request via c.Locals("userId") and
// c.Locals("email").
func NewSessionGate(tokens *Generator, cfg GateConfig) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "token"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/auth"
	}
	return func(c *fiber.Ctx) error {
		if isPublic(c.Path(), cfg.PublicPrefixes) {
			return c.Next()
		}

		tokenStr := c.Cookies(cfg.CookieName)
		if tokenStr == "" {
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		}
		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		}

		c.Locals("userId", claims.Subject)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func isPublic(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
