package usecase

import (
	"sync"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// ViewEngineRegistry hands out one long-lived ViewEngine per doctor so that
// cache, filters, and pagination survive across requests.
type ViewEngineRegistry struct {
	mu        sync.Mutex
	engines   map[int]*ViewEngine
	schedules repository.ScheduleSource
	directory repository.DirectorySource
	query     AppointmentQueryUsecase
	cacheTTL  time.Duration
	pageSize  int
	log       *logrus.Logger
}

func NewViewEngineRegistry(
	schedules repository.ScheduleSource,
	directory repository.DirectorySource,
	query AppointmentQueryUsecase,
	cacheTTL time.Duration,
	pageSize int,
	log *logrus.Logger,
) *ViewEngineRegistry {
	return &ViewEngineRegistry{
		engines:   make(map[int]*ViewEngine),
		schedules: schedules,
		directory: directory,
		query:     query,
		cacheTTL:  cacheTTL,
		pageSize:  pageSize,
		log:       log,
	}
}

// Engine returns the engine for the doctor, creating it on first use.
func (r *ViewEngineRegistry) Engine(doctorID int) *ViewEngine {
	r.mu.Lock()
	defer r.mu.Unlock()

	engine, ok := r.engines[doctorID]
	if !ok {
		engine = NewViewEngine(doctorID, r.schedules, r.directory, r.query, r.cacheTTL, r.pageSize, r.log, nil)
		r.engines[doctorID] = engine
	}
	return engine
}

// Invalidate drops the cached collections of one doctor's engine, if any.
func (r *ViewEngineRegistry) Invalidate(doctorID int) {
	r.mu.Lock()
	engine, ok := r.engines[doctorID]
	r.mu.Unlock()
	if ok {
		engine.Invalidate()
	}
}
