package api

import (
	"errors"
	"fmt"

	"github.com/classpulse/classpulse/pkg/internal/http/exts"
	"github.com/classpulse/classpulse/pkg/internal/http/ws"
	"github.com/classpulse/classpulse/pkg/internal/insight"
	"github.com/classpulse/classpulse/pkg/internal/models"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// createPoll serves both creation paths, disambiguated by action_type:
// "create" asks the generation model to draft a poll from a topic and hands
// the draft back for review without persisting anything, "final" persists
// the reviewed question and options and announces the poll to the room.
func (a *API) createPoll(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	classroomId, _ := c.ParamsInt("classroomId")

	classroom, err := a.svc.GetClassroomWithID(uint(classroomId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.IsClassroomOwner(classroom, user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not own this classroom")
	}

	var data struct {
		ActionType string   `json:"action_type" validate:"required,oneof=create final"`
		Topic      string   `json:"topic"`
		Question   string   `json:"question"`
		Options    []string `json:"options"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	switch data.ActionType {
	case "create":
		if len(data.Topic) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "topic is required")
		}

		raw, err := a.gen.GenerateSituation(c.Context(), data.Topic)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to generate situation: %v", err))
		}
		question, options, err := insight.ParseSituation(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to parse generated situation: %v", err))
		}

		return c.JSON(fiber.Map{
			"question": question,
			"options":  options,
		})

	default:
		if len(data.Question) == 0 || len(data.Options) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "question and options are required")
		}

		poll, err := a.svc.NewPoll(classroom, data.Question, data.Options)
		if err != nil {
			if errors.Is(err, services.ErrNoOptions) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		a.hub.Broadcast(ws.RoomOfClassroom(classroom.ID), "new_poll", fiber.Map{
			"poll_id":  poll.ID,
			"question": poll.Question,
		})

		return c.Status(fiber.StatusCreated).JSON(poll)
	}
}

func (a *API) getPoll(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	pollId, _ := c.ParamsInt("pollId")

	poll, err := a.svc.GetPollWithID(uint(pollId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	poll.Metric = a.svc.GetPollMetric(poll)

	myVote, err := a.svc.GetAccountVote(poll, user)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"poll":    poll,
		"my_vote": myVote,
	})
}

// reviewPoll asks the selection model which option shows the least empathy,
// as feedback material for the professor running the classroom.
func (a *API) reviewPoll(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Account)
	pollId, _ := c.ParamsInt("pollId")

	poll, err := a.svc.GetPollWithID(uint(pollId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	classroom, err := a.svc.GetClassroomWithID(poll.ClassroomID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !services.IsClassroomOwner(classroom, user) {
		return fiber.NewError(fiber.StatusForbidden, "you do not own this classroom")
	}

	option, rationale, err := a.gen.GenerateSelection(c.Context(), poll.Question, poll.Options)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to generate selection: %v", err))
	}

	return c.JSON(fiber.Map{
		"option":    option,
		"rationale": rationale,
	})
}
