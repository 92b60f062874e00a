package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/calendar"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"
	"github.com/ryderthieu/hospital-management-sub003/internal/service"
	"github.com/ryderthieu/hospital-management-sub003/pkg/timeutil"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const unknownRoomPlaceholder = "Unknown room"

// ViewSnapshot is the read-only view model handed to presentation layers.
// Every field is a fresh allocation; the engine's raw collections are never
// exposed for mutation.
type ViewSnapshot struct {
	Loading          bool
	Error            string
	ViewMode         entity.ViewMode
	ReferenceDate    time.Time
	CalendarDays     []entity.CalendarDay
	SelectedDay      *time.Time
	SelectedDayItems []entity.CalendarItem
	TotalWeekHours   float64
	TotalMonthHours  float64
	Appointments     *AppointmentPageView
	Filter           entity.AppointmentFilter
	PageNo           int
	PageSize         int
}

// ViewEngine composes the grid builder, cache manager, and filtered query
// layer behind navigation operations for one doctor. Callers hold an
// explicit handle; there is no ambient shared state.
type ViewEngine struct {
	log       *logrus.Logger
	doctorID  int
	schedules repository.ScheduleSource
	directory repository.DirectorySource
	query     AppointmentQueryUsecase

	scheduleCache *service.ViewCache[[]entity.Schedule]
	pageCache     *service.ViewCache[*AppointmentPageView]
	group         singleflight.Group

	// fetchSeq/appliedSeq guard against a slow response overwriting the
	// result of a later request under rapid filter changes.
	fetchSeq   uint64
	appliedSeq uint64

	mu          sync.Mutex
	pageKey     string // filter+page identity of the cached page view
	refDate     time.Time
	mode        entity.ViewMode
	selectedDay *time.Time
	filter      entity.AppointmentFilter
	pageNo      int
	pageSize    int
	pageView    *AppointmentPageView
	loading     bool
	schedErr    error
	pageErr     error
	subscribers []func(ViewSnapshot)
}

// NewViewEngine creates an engine for one doctor. A nil now falls back to
// time.Now; tests inject a controllable clock for the cache TTL.
func NewViewEngine(
	doctorID int,
	schedules repository.ScheduleSource,
	directory repository.DirectorySource,
	query AppointmentQueryUsecase,
	cacheTTL time.Duration,
	pageSize int,
	log *logrus.Logger,
	now func() time.Time,
) *ViewEngine {
	if now == nil {
		now = time.Now
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return &ViewEngine{
		log:           log,
		doctorID:      doctorID,
		schedules:     schedules,
		directory:     directory,
		query:         query,
		scheduleCache: service.NewViewCache[[]entity.Schedule](cacheTTL, now),
		pageCache:     service.NewViewCache[*AppointmentPageView](cacheTTL, now),
		refDate:       timeutil.TruncateToDay(now()),
		mode:          entity.ViewMonth,
		pageSize:      pageSize,
	}
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// state change.
func (e *ViewEngine) Subscribe(fn func(ViewSnapshot)) {
	e.mu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.mu.Unlock()
}

// Load ensures both raw collections are present (respecting the cache TTL)
// and returns the derived view model.
func (e *ViewEngine) Load(ctx context.Context) ViewSnapshot {
	e.ensureSchedules(ctx, false)
	e.fetchPage(ctx, false)
	return e.Snapshot()
}

// Refresh bypasses the cache and refetches both collections regardless of
// staleness.
func (e *ViewEngine) Refresh(ctx context.Context) ViewSnapshot {
	e.ensureSchedules(ctx, true)
	e.fetchPage(ctx, true)
	return e.Snapshot()
}

// PreviousPeriod shifts the reference date back one month (month view) or
// seven days (week view) and rebuilds the grid from the cached collections.
func (e *ViewEngine) PreviousPeriod(ctx context.Context) ViewSnapshot {
	return e.shiftPeriod(ctx, -1)
}

// NextPeriod shifts the reference date forward one period.
func (e *ViewEngine) NextPeriod(ctx context.Context) ViewSnapshot {
	return e.shiftPeriod(ctx, 1)
}

func (e *ViewEngine) shiftPeriod(ctx context.Context, direction int) ViewSnapshot {
	e.mu.Lock()
	if e.mode == entity.ViewWeek {
		e.refDate = e.refDate.AddDate(0, 0, 7*direction)
	} else {
		e.refDate = e.refDate.AddDate(0, direction, 0)
	}
	e.mu.Unlock()

	e.ensureSchedules(ctx, false)
	snap := e.Snapshot()
	e.notify(snap)
	return snap
}

// SelectDay sets the active day. The day's items are recomputed from the
// already cached collections; no fetch is triggered.
func (e *ViewEngine) SelectDay(day time.Time) ViewSnapshot {
	normalized := timeutil.TruncateToDay(day)
	e.mu.Lock()
	e.selectedDay = &normalized
	e.mu.Unlock()

	snap := e.Snapshot()
	e.notify(snap)
	return snap
}

// ClearSelectedDay drops the active day selection.
func (e *ViewEngine) ClearSelectedDay() ViewSnapshot {
	e.mu.Lock()
	e.selectedDay = nil
	e.mu.Unlock()

	snap := e.Snapshot()
	e.notify(snap)
	return snap
}

// SetViewMode switches between month and week and rebuilds the grid.
func (e *ViewEngine) SetViewMode(ctx context.Context, mode entity.ViewMode) ViewSnapshot {
	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()

	e.ensureSchedules(ctx, false)
	snap := e.Snapshot()
	e.notify(snap)
	return snap
}

// SetReference jumps the view to the period containing the given date.
func (e *ViewEngine) SetReference(ctx context.Context, date time.Time) ViewSnapshot {
	e.mu.Lock()
	e.refDate = timeutil.TruncateToDay(date)
	e.mu.Unlock()

	e.ensureSchedules(ctx, false)
	snap := e.Snapshot()
	e.notify(snap)
	return snap
}

// SetFilters merges the patch into the current filters, resets pagination to
// the first page, and triggers exactly one refetch. Filters and pagination
// are never independently stale relative to each other.
func (e *ViewEngine) SetFilters(ctx context.Context, patch entity.FilterPatch) ViewSnapshot {
	e.mu.Lock()
	e.filter = e.filter.Apply(patch)
	e.pageNo = 0
	e.mu.Unlock()

	e.fetchPage(ctx, false)
	return e.Snapshot()
}

// SetPage requests another server page with the current filters.
func (e *ViewEngine) SetPage(ctx context.Context, pageNo, pageSize int) ViewSnapshot {
	e.mu.Lock()
	if pageNo >= 0 {
		e.pageNo = pageNo
	}
	if pageSize > 0 {
		e.pageSize = pageSize
	}
	e.mu.Unlock()

	e.fetchPage(ctx, false)
	return e.Snapshot()
}

// SetTodayFilter narrows the list to today's appointments.
func (e *ViewEngine) SetTodayFilter(ctx context.Context) ViewSnapshot {
	today := time.Now().Format(timeutil.DateLayout)
	return e.SetFilters(ctx, entity.FilterPatch{Date: &today})
}

// ClearDateFilter removes the single-day constraint.
func (e *ViewEngine) ClearDateFilter(ctx context.Context) ViewSnapshot {
	empty := ""
	return e.SetFilters(ctx, entity.FilterPatch{Date: &empty})
}

// Invalidate clears every cached collection, forcing the next access to
// refetch.
func (e *ViewEngine) Invalidate() {
	e.scheduleCache.Invalidate()
	e.pageCache.Invalidate()
	e.mu.Lock()
	e.pageView = nil
	e.pageKey = ""
	e.schedErr = nil
	e.pageErr = nil
	e.mu.Unlock()
}

// ensureSchedules fetches the raw schedule collection when the cache demands
// it. Overlapping callers share a single in-flight fetch. A failed fetch
// leaves any stale data in place and records the error for the snapshot.
func (e *ViewEngine) ensureSchedules(ctx context.Context, force bool) {
	if !e.scheduleCache.ShouldFetch(force) {
		return
	}

	e.setLoading(true)
	_, err, _ := e.group.Do("schedules", func() (interface{}, error) {
		data, fetchErr := e.schedules.FetchSchedules(ctx, e.doctorID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		enriched := e.enrichRooms(ctx, data)
		e.scheduleCache.Store(enriched)
		return enriched, nil
	})
	e.setLoading(false)

	e.mu.Lock()
	if err != nil {
		e.log.Warnf("Failed to fetch schedules for doctor %d: %+v", e.doctorID, err)
		e.schedErr = err
	} else {
		e.schedErr = nil
	}
	e.mu.Unlock()
}

// enrichRooms fills missing room details from the directory. The result is a
// fresh slice; lookup failures substitute a placeholder and never fail the
// surrounding fetch.
func (e *ViewEngine) enrichRooms(ctx context.Context, schedules []entity.Schedule) []entity.Schedule {
	enriched := make([]entity.Schedule, len(schedules))
	copy(enriched, schedules)
	for i := range enriched {
		if enriched[i].RoomNote != "" || enriched[i].RoomID == 0 {
			continue
		}
		room, err := e.directory.FetchRoomInfo(ctx, enriched[i].RoomID)
		if err != nil || room == nil {
			if err != nil {
				e.log.Warnf("Failed to fetch room info for %d: %+v", enriched[i].RoomID, err)
			}
			enriched[i].RoomNote = unknownRoomPlaceholder
			continue
		}
		enriched[i].RoomNote = room.Note
		enriched[i].Floor = room.Floor
		enriched[i].Building = room.Building
	}
	return enriched
}

// fetchPage fetches the appointment page for the current filters, honoring
// the page cache TTL: an unchanged filter+page combination within the TTL is
// served from the cached view. A sequence number discards responses that
// resolve after a newer request has already been applied; overlapping
// requests for the same key share one fetch.
func (e *ViewEngine) fetchPage(ctx context.Context, force bool) {
	e.mu.Lock()
	filter := e.filter
	pageNo := e.pageNo
	pageSize := e.pageSize
	currentKey := e.pageKey
	e.mu.Unlock()

	key := filter.CacheKey(pageNo, pageSize)
	if key == currentKey && !e.pageCache.ShouldFetch(force) {
		return
	}

	e.setLoading(true)
	seq := atomic.AddUint64(&e.fetchSeq, 1)
	result, err, _ := e.group.Do(key, func() (interface{}, error) {
		return e.query.GetAppointmentPage(ctx, e.doctorID, filter, pageNo, pageSize)
	})
	e.setLoading(false)

	e.mu.Lock()
	if seq < e.appliedSeq {
		// A newer request already resolved; this response is stale.
		e.mu.Unlock()
		return
	}
	e.appliedSeq = seq
	if err != nil {
		e.log.Warnf("Failed to fetch appointments for doctor %d: %+v", e.doctorID, err)
		e.pageErr = err
	} else {
		e.pageErr = nil
		view := result.(*AppointmentPageView)
		e.pageView = view
		e.pageCache.Store(view)
		e.pageKey = key
	}
	e.mu.Unlock()
}

func (e *ViewEngine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()
	e.notify(e.Snapshot())
}

// Snapshot derives the current view model from the cached collections. Grid
// building, workload totals, and day selection are pure recomputations; no
// fetch is triggered here.
func (e *ViewEngine) Snapshot() ViewSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	schedules, _ := e.scheduleCache.Data()

	items := make([]entity.CalendarItem, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, s)
	}
	if e.pageView != nil {
		for _, a := range e.pageView.Refined {
			items = append(items, a)
		}
	}

	snap := ViewSnapshot{
		Loading:       e.loading,
		ViewMode:      e.mode,
		ReferenceDate: e.refDate,
		CalendarDays:  calendar.BuildGrid(e.refDate, e.mode, items),
		Appointments:  e.pageView,
		Filter:        e.filter,
		PageNo:        e.pageNo,
		PageSize:      e.pageSize,
	}
	if e.schedErr != nil {
		snap.Error = e.schedErr.Error()
	} else if e.pageErr != nil {
		snap.Error = e.pageErr.Error()
	}

	var weekHours, monthHours float64
	for _, s := range schedules {
		hours, err := timeutil.DurationHours(s.StartTime, s.EndTime)
		if err != nil {
			continue
		}
		if timeutil.InWeekOf(s.WorkDate, e.refDate) {
			weekHours += hours
		}
		if timeutil.InMonthOf(s.WorkDate, e.refDate) {
			monthHours += hours
		}
	}
	snap.TotalWeekHours = timeutil.Round1(weekHours)
	snap.TotalMonthHours = timeutil.Round1(monthHours)

	if e.selectedDay != nil {
		day := *e.selectedDay
		snap.SelectedDay = &day
		selected := make([]entity.CalendarItem, 0)
		for _, item := range items {
			if timeutil.SameDay(item.CalendarDate(), day) {
				selected = append(selected, item)
			}
		}
		snap.SelectedDayItems = selected
	}

	return snap
}

func (e *ViewEngine) notify(snap ViewSnapshot) {
	e.mu.Lock()
	subs := make([]func(ViewSnapshot), len(e.subscribers))
	copy(subs, e.subscribers)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
