// Package requestid assigns a unique ID to every incoming request.
//
// The ID is stored in the request locals under "request_id" and echoed
// in the X-Request-Id response header so clients can correlate their
// reports with server logs.
package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header is the response header carrying the request ID.
	Header = "X-Request-Id"

	// LocalsKey is the fiber locals key the ID is stored under.
	LocalsKey = "request_id"
)

// New returns the request ID middleware. An incoming X-Request-Id is
// reused so IDs survive proxies; otherwise a fresh UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
