package api

import (
	"errors"

	"github.com/classpulse/classpulse/pkg/internal/http/exts"
	"github.com/classpulse/classpulse/pkg/internal/http/ws"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (a *API) votePoll(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	pollId, _ := c.ParamsInt("pollId")

	var data struct {
		Option *int `json:"option" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	poll, err := a.svc.GetPollWithID(uint(pollId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	vote, err := a.svc.AddPollVote(poll, user, *data.Option)
	if err != nil {
		if errors.Is(err, services.ErrOptionOutOfRange) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	a.hub.Broadcast(ws.RoomOfClassroom(poll.ClassroomID), "vote_update", fiber.Map{
		"poll_id": poll.ID,
		"user":    user.Name,
		"option":  vote.OptionIndex,
	})

	return c.JSON(vote)
}
