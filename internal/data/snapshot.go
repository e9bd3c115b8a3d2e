// Package data владеет загруженными таблицами: один неизменяемый снимок,
// который целиком подменяется при перезагрузке.
package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/admission"
	"github.com/Spok95/university-assistant-bot/internal/config"
	"github.com/Spok95/university-assistant-bot/internal/metrics"
	"github.com/Spok95/university-assistant-bot/internal/moodle"
	"github.com/Spok95/university-assistant-bot/internal/schedule"
)

type Snapshot struct {
	Roster   *moodle.Index
	Book     *schedule.Book
	Catalog  *admission.Catalog
	LoadedAt time.Time
}

// LoadFunc строит новый снимок. В проде: Loader.Load.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

type Loader struct {
	Files config.Files
	Log   *zap.Logger
}

// Load: учётные записи и расписание обязательны, данные приёмной комиссии
// подменяются встроенными.
func (l Loader) Load(ctx context.Context) (*Snapshot, error) {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	roster, err := moodle.Load(l.Files.Reg)
	if err != nil {
		return nil, err
	}
	book, err := schedule.Load(l.Files.Timetable)
	if err != nil {
		return nil, err
	}
	catalog := admission.LoadCatalog(admission.Paths{
		Bachelor:        l.Files.Bachelor,
		Magistratura:    l.Files.Magistratura,
		Doctorantura:    l.Files.Doctorantura,
		KlimovTest:      l.Files.KlimovTest,
		Recommendations: l.Files.Recommendations,
	}, log)

	log.Info("data loaded",
		zap.String("roster_format", roster.Format()),
		zap.Int("students", roster.Len()),
		zap.Int("timetable_sheets", book.SheetCount()),
	)
	metrics.DataRecords.WithLabelValues("students").Set(float64(roster.Len()))
	metrics.DataRecords.WithLabelValues("timetable_sheets").Set(float64(book.SheetCount()))
	return &Snapshot{Roster: roster, Book: book, Catalog: catalog, LoadedAt: time.Now()}, nil
}

// Store хранит текущий снимок. Читатели берут указатель через Current и
// работают с ним без блокировок.
type Store struct {
	load LoadFunc
	log  *zap.Logger
	cur  atomic.Pointer[Snapshot]
	// перезагрузки не идут параллельно
	reloadMu sync.Mutex
}

// NewStore загружает первый снимок; ошибка здесь фатальна для процесса.
func NewStore(ctx context.Context, load LoadFunc, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{load: load, log: log}
	snap, err := load(ctx)
	if err != nil {
		metrics.DataReloads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("initial data load: %w", err)
	}
	if snap == nil {
		return nil, errors.New("initial data load: empty snapshot")
	}
	s.cur.Store(snap)
	metrics.DataReloads.WithLabelValues("ok").Inc()
	return s, nil
}

func (s *Store) Current() *Snapshot { return s.cur.Load() }

// Reload строит новый снимок и подменяет указатель. При ошибке остаётся старый.
func (s *Store) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	snap, err := s.load(ctx)
	if err == nil && snap == nil {
		err = errors.New("empty snapshot")
	}
	if err != nil {
		metrics.DataReloads.WithLabelValues("error").Inc()
		s.log.Error("data reload failed, keeping previous snapshot", zap.Error(err))
		return err
	}
	s.cur.Store(snap)
	metrics.DataReloads.WithLabelValues("ok").Inc()
	s.log.Info("data reloaded", zap.Time("loaded_at", snap.LoadedAt))
	return nil
}
