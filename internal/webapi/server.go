// Package webapi: HTTP API для веб-приложения поверх того же снимка данных, что и бот.
package webapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/assistant"
	"github.com/Spok95/university-assistant-bot/internal/data"
	"github.com/Spok95/university-assistant-bot/internal/identity"
)

type Deps struct {
	Data      *data.Store
	Assistant *assistant.Responder
	// DB может быть nil: тогда результаты теста не сохраняются
	DB          *sqlx.DB
	Log         *zap.Logger
	Location    *time.Location
	CORSOrigins []string
	Now         func() time.Time
}

type Server struct {
	data      *data.Store
	assistant *assistant.Responder
	db        *sqlx.DB
	log       *zap.Logger
	loc       *time.Location
	cors      []string
	now       func() time.Time
	validate  *validator.Validate
}

func NewServer(d Deps) *Server {
	s := &Server{
		data:      d.Data,
		assistant: d.Assistant,
		db:        d.DB,
		log:       d.Log,
		loc:       d.Location,
		cors:      d.CORSOrigins,
		now:       d.Now,
		validate:  newValidator(),
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.assistant == nil {
		s.assistant = assistant.NewResponder(nil, 0, s.log)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("kzphone", func(fl validator.FieldLevel) bool {
		return identity.ValidatePhone(fl.Field().String())
	})
	return v
}

func (s *Server) today() time.Time { return s.now().In(s.loc) }

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(recoverer(s.log))
	r.Use(requestLogger(s.log))
	if len(s.cors) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cors,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/schedule", func(sch chi.Router) {
			sch.Get("/", s.Schedule)
			sch.Get("/week", s.ScheduleWeek)
		})

		api.Route("/moodle", func(m chi.Router) {
			m.Get("/credentials", s.Credentials)
			m.Post("/credentials-by-phone", s.CredentialsByPhone)
			m.Get("/search", s.SearchStudents)
			m.Get("/groups", s.Groups)
			m.Get("/statistics", s.Statistics)
		})

		api.Route("/admission", func(a chi.Router) {
			a.Get("/programs", s.Programs)
			a.Get("/klimov-test", s.KlimovTest)
			a.Post("/recommendations", s.Recommendations)
			a.Get("/search-programs", s.SearchPrograms)
			a.Get("/results", s.Results)
		})

		api.Post("/ai/chat", s.Chat)
		api.Get("/system/health", s.Health)
	})
	return r
}
