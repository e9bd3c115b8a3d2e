package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/admission"
	"github.com/Spok95/university-assistant-bot/internal/apperr"
	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/models"
	"github.com/Spok95/university-assistant-bot/internal/schedule"
)

const maxBodyBytes = 1 << 20

var (
	errNoGroupOrDay = apperr.WithMessage(apperr.ErrInvalidInput, "Не указана группа или день")
	errNoIIN        = apperr.WithMessage(apperr.ErrInvalidInput, "Не указан ИИН")
	errShortQuery   = apperr.WithMessage(apperr.ErrInvalidInput, "Слишком короткий поисковый запрос")
	errNoPhoneName  = apperr.WithMessage(apperr.ErrInvalidInput, "Не указан номер телефона или ФИО")
	errNoSubjects   = apperr.WithMessage(apperr.ErrInvalidInput, "Не указаны предметы")
	errBadDate      = apperr.WithMessage(apperr.ErrInvalidInput, "Неверный формат даты")
	errNoMessage    = apperr.WithMessage(apperr.ErrInvalidInput, "Пустое сообщение")
	errBadPhone     = apperr.WithMessage(apperr.ErrInvalidInput, "Неверный формат номера телефона")
	errBadScore     = apperr.WithMessage(apperr.ErrInvalidInput, "Балл ЕНТ должен быть числом от 0 до 140")
	errBadUserID    = apperr.WithMessage(apperr.ErrInvalidInput, "Не указан user_id")
	errNoStorage    = apperr.WithMessage(apperr.ErrDataUnavailable, "Хранилище результатов недоступно")
)

const (
	maxEntScore    = 140
	resultsHistory = 5
)

type phoneRequest struct {
	Phone    string `json:"phone" validate:"required,max=32,kzphone"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

type answerDTO struct {
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option" validate:"max=16"`
}

type recommendationsRequest struct {
	Answers []answerDTO `json:"answers" validate:"max=500,dive"`
	// необязательно: если указан и есть профиль, результат сохраняется
	UserID int64 `json:"user_id" validate:"gte=0"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// decode читает JSON тела; false: ответ 400 уже отправлен.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeBadRequest(w, "Некорректный JSON")
		return false
	}
	return true
}

// logOutcome: неверный ввод и «не найдено» считаются штатными исходами, не ошибками.
func (s *Server) logOutcome(kind string, err error) {
	if err == nil {
		metrics.ObserveLookup(kind, "ok")
		return
	}
	e := apperr.FromError(err)
	metrics.ObserveLookup(kind, e.Code)
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		s.log.Debug("lookup rejected", zap.String("kind", kind), zap.String("reason", e.Message))
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrIncompleteRecord):
		s.log.Info("lookup miss", zap.String("kind", kind), zap.String("code", e.Code))
	default:
		s.log.Error("lookup failed", zap.String("kind", kind), zap.Error(err))
	}
}

// Schedule: day может быть датой (ParseDate) или готовой подписью дня из сетки.
func (s *Server) Schedule(w http.ResponseWriter, r *http.Request) {
	group := strings.TrimSpace(r.URL.Query().Get("group"))
	day := strings.TrimSpace(r.URL.Query().Get("day"))
	if group == "" || day == "" {
		s.logOutcome("schedule", errNoGroupOrDay)
		writeFail(w, errNoGroupOrDay)
		return
	}
	book := s.data.Current().Book
	if date, ok := schedule.ParseDate(day, s.today()); ok {
		s.logOutcome("schedule", nil)
		writeOK(w, book.Day(group, date))
		return
	}
	s.logOutcome("schedule", nil)
	writeOK(w, schedule.DaySchedule{
		Group:     group,
		DayOfWeek: day,
		Lessons:   book.Find(group, day),
		Status:    schedule.StatusSuccess,
	})
}

func (s *Server) ScheduleWeek(w http.ResponseWriter, r *http.Request) {
	group := strings.TrimSpace(r.URL.Query().Get("group"))
	if group == "" {
		writeFail(w, errNoGroupOrDay)
		return
	}
	start := s.today()
	if raw := strings.TrimSpace(r.URL.Query().Get("start")); raw != "" {
		d, ok := schedule.ParseDate(raw, s.today())
		if !ok {
			writeFail(w, errBadDate)
			return
		}
		start = d
	}
	writeOK(w, s.data.Current().Book.Week(group, start))
}

func (s *Server) Credentials(w http.ResponseWriter, r *http.Request) {
	iin := strings.TrimSpace(r.URL.Query().Get("iin"))
	if iin == "" {
		s.logOutcome("iin", errNoIIN)
		writeFail(w, errNoIIN)
		return
	}
	creds, err := s.data.Current().Roster.LookupByID(iin)
	s.logOutcome("iin", err)
	if err != nil {
		writeFail(w, err)
		return
	}
	writeOK(w, creds)
}

func (s *Server) CredentialsByPhone(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		fail := errNoPhoneName
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs[0].Tag() == "kzphone" {
			fail = errBadPhone
		}
		s.logOutcome("phone", fail)
		writeFail(w, fail)
		return
	}
	creds, err := s.data.Current().Roster.LookupByPhoneAndName(req.Phone, req.FullName)
	s.logOutcome("phone", err)
	if err != nil {
		writeFail(w, err)
		return
	}
	writeOK(w, creds)
}

func (s *Server) SearchStudents(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < 2 {
		writeFail(w, errShortQuery)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}
	writeOK(w, s.data.Current().Roster.Search(q, limit))
}

func (s *Server) Groups(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.data.Current().Roster.Groups())
}

func (s *Server) Statistics(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.data.Current().Roster.Statistics())
}

func (s *Server) Programs(w http.ResponseWriter, r *http.Request) {
	kind := strings.TrimSpace(r.URL.Query().Get("type"))
	if kind == "" {
		kind = admission.KindBachelor
	}
	writeOK(w, s.data.Current().Catalog.Programs(kind))
}

func (s *Server) KlimovTest(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.data.Current().Catalog.Test())
}

func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeFail(w, apperr.Wrap(err, apperr.ErrInvalidInput, "Некорректные ответы теста"))
		return
	}
	answers := make([]admission.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, admission.Answer{QuestionID: a.QuestionID, SelectedOption: a.SelectedOption})
	}
	res := s.data.Current().Catalog.Recommend(answers)
	if req.UserID > 0 {
		s.saveResult(r.Context(), req.UserID, res)
	}
	writeOK(w, res)
}

// saveResult сохраняет результат теста; сбой БД на ответ не влияет.
func (s *Server) saveResult(ctx context.Context, userID int64, res admission.Result) {
	if s.db == nil {
		return
	}
	_, err := db.SaveKlimovResult(ctx, s.db, models.KlimovResult{
		UserID:              userID,
		NatureScore:         res.Scores[admission.Nature],
		TechScore:           res.Scores[admission.Tech],
		PersonScore:         res.Scores[admission.Person],
		SignScore:           res.Scores[admission.Sign],
		ArtScore:            res.Scores[admission.Art],
		RecommendedCategory: string(res.LeadingCategory),
	})
	if err != nil {
		s.log.Warn("save klimov result", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (s *Server) SearchPrograms(w http.ResponseWriter, r *http.Request) {
	s1 := strings.TrimSpace(r.URL.Query().Get("subject1"))
	s2 := strings.TrimSpace(r.URL.Query().Get("subject2"))
	if s1 == "" || s2 == "" {
		writeFail(w, errNoSubjects)
		return
	}
	found := s.data.Current().Catalog.SearchBySubjects(s1, s2)
	if raw := strings.TrimSpace(r.URL.Query().Get("score")); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil || score < 0 || score > maxEntScore {
			writeFail(w, errBadScore)
			return
		}
		found.RateScore(score)
	}
	writeOK(w, found)
}

// Results: последние сохранённые результаты теста Климова пользователя.
func (s *Server) Results(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		writeFail(w, errBadUserID)
		return
	}
	if s.db == nil {
		writeFail(w, errNoStorage)
		return
	}
	res, err := db.LastKlimovResults(r.Context(), s.db, userID, resultsHistory)
	if err != nil {
		s.log.Error("load klimov results", zap.Int64("user_id", userID), zap.Error(err))
		writeFail(w, apperr.Wrap(err, apperr.ErrInternal, "Не удалось загрузить результаты"))
		return
	}
	if res == nil {
		res = []models.KlimovResult{}
	}
	writeOK(w, res)
}

func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		writeFail(w, errNoMessage)
		return
	}
	writeOK(w, chatResponse{Response: s.assistant.Reply(r.Context(), req.Message)})
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	LoadedAt  time.Time      `json:"data_loaded_at"`
	Services  map[string]any `json:"services"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	snap := s.data.Current()
	ai := "fallback"
	if s.assistant.HasModel() {
		ai = "active"
	}
	writeOK(w, healthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
		LoadedAt:  snap.LoadedAt,
		Services: map[string]any{
			"moodle":    snap.Roster.Statistics(),
			"schedule":  "active",
			"admission": "active",
			"ai":        ai,
		},
	})
}
