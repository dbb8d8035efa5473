package api

import (
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

const sessionKeyAccountID = "account_id"

// authRequired resolves the session into an account and stores it in the
// request locals, the same place the upstream handlers expect it.
func (a *API) authRequired(c *fiber.Ctx) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	uid, ok := sess.Get(sessionKeyAccountID).(uint)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you are not signed in")
	}

	user, err := a.svc.GetAccountWithID(uid)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "you are not signed in")
	}

	c.Locals("user", user)
	return c.Next()
}

func (a *API) professorRequired(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	if user.Role != models.RoleProfessor {
		return fiber.NewError(fiber.StatusForbidden, "only professors can do this")
	}
	return c.Next()
}

func (a *API) studentRequired(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	if user.Role != models.RoleStudent {
		return fiber.NewError(fiber.StatusForbidden, "only students can do this")
	}
	return c.Next()
}
