package api

import (
	"github.com/classpulse/classpulse/pkg/internal/http/exts"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func (a *API) createClassroom(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)

	var data struct {
		Name string `json:"name" validate:"required,max=100"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	classroom, err := a.svc.NewClassroom(user, data.Name)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(classroom)
}

func (a *API) deleteClassroom(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	classroomId, _ := c.ParamsInt("classroomId")

	classroom, err := a.svc.GetClassroomWithID(uint(classroomId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if !services.IsClassroomOwner(classroom, user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not own this classroom")
	}

	if err := a.svc.DeleteClassroom(classroom); err != nil {
		log.Error().Err(err).Uint("classroom", classroom.ID).Msg("An error occurred when deleting classroom...")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(classroom)
}

func (a *API) joinClassroom(c *fiber.Ctx) error {
	var data struct {
		Code string `json:"code" validate:"required,len=6"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	classroom, err := a.svc.GetClassroomWithCode(data.Code)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "invalid classroom code")
	}

	return c.JSON(classroom)
}

func (a *API) getClassroom(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	classroomId, _ := c.ParamsInt("classroomId")

	classroom, err := a.svc.GetClassroomWithID(uint(classroomId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// Professors may only look into their own classrooms; students browse
	// whichever classroom they joined by code.
	if user.Role == models.RoleProfessor && classroom.AccountID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you do not own this classroom")
	}

	polls, err := a.svc.ListClassroomPoll(classroom)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"classroom": classroom,
		"polls":     polls,
	})
}
