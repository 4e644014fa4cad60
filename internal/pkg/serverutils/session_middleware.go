package serverutils

import (
	"inspire-it-be/internal/repository/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader  = "X-Session-Id"
	SessionIDLocal = "session_id"
)

// SessionMiddleware resolves the per-browser session. A missing or unknown
// ID gets a fresh session with seeded defaults; the ID is echoed back so
// the browser can carry it on subsequent requests. Sessions are anonymous,
// there is no authentication surface.
func SessionMiddleware(sessions *memory.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := ctx.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		} else if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		// Seeds defaults on every cycle; idempotent for live sessions
		sessions.GetOrCreate(sessionID)

		ctx.Locals(SessionIDLocal, sessionID)
		ctx.Set(SessionHeader, sessionID)
		return ctx.Next()
	}
}
