package api

import (
	"context"

	"github.com/classpulse/classpulse/pkg/internal/http/ws"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Generator is the boundary to the hosted text-generation models, satisfied
// by *insight.Agent.
type Generator interface {
	GenerateSituation(ctx context.Context, topic string) (string, error)
	GenerateSelection(ctx context.Context, situation string, options []string) (int, string, error)
}

type API struct {
	svc      *services.Service
	gen      Generator
	hub      *ws.Hub
	sessions *session.Store
}

func New(svc *services.Service, gen Generator, hub *ws.Hub, sessions *session.Store) *API {
	return &API{
		svc:      svc,
		gen:      gen,
		hub:      hub,
		sessions: sessions,
	}
}

func (a *API) MapControllers(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		auth := api.Group("/auth")
		{
			auth.Post("/register", a.register)
			auth.Post("/login", a.login)
			auth.Get("/logout", a.authRequired, a.logout)
			auth.Get("/me", a.authRequired, a.getMe)
		}

		api.Get("/dashboard", a.authRequired, a.getDashboard)

		classrooms := api.Group("/classrooms")
		{
			classrooms.Post("/", a.authRequired, a.professorRequired, a.createClassroom)
			classrooms.Post("/join", a.authRequired, a.studentRequired, a.joinClassroom)
			classrooms.Get("/:classroomId", a.authRequired, a.getClassroom)
			classrooms.Delete("/:classroomId", a.authRequired, a.professorRequired, a.deleteClassroom)
			classrooms.Post("/:classroomId/polls", a.authRequired, a.professorRequired, a.createPoll)
		}

		polls := api.Group("/polls")
		{
			polls.Get("/:pollId", a.authRequired, a.getPoll)
			polls.Post("/:pollId/vote", a.authRequired, a.votePoll)
			polls.Get("/:pollId/review", a.authRequired, a.professorRequired, a.reviewPoll)
		}
	}
}
