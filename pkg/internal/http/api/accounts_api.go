package api

import (
	"errors"

	"github.com/classpulse/classpulse/pkg/internal/http/exts"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (a *API) register(c *fiber.Ctx) error {
	var data struct {
		Name     string      `json:"name" validate:"required,alphanum,min=2,max=80"`
		Password string      `json:"password" validate:"required,min=4,max=128"`
		Role     models.Role `json:"role"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if len(data.Role) == 0 {
		data.Role = models.RoleStudent
	} else if !data.Role.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "role must be professor or student")
	}

	account, err := a.svc.NewAccount(data.Name, data.Password, data.Role)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func (a *API) login(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := a.svc.Authenticate(data.Name, data.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	sess.Set(sessionKeyAccountID, account.ID)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(account)
}

func (a *API) logout(c *fiber.Ctx) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := sess.Destroy(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *API) getMe(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	return c.JSON(user)
}

// getDashboard is the role-specific landing payload: professors get their
// classrooms newest first, students get a prompt to join by code.
func (a *API) getDashboard(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	if user.Role == models.RoleProfessor {
		classrooms, err := a.svc.ListOwnedClassroom(user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"role":       user.Role,
			"classrooms": classrooms,
		})
	}

	return c.JSON(fiber.Map{
		"role": user.Role,
	})
}
