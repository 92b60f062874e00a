package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ryderthieu/hospital-management-sub003/internal/domain/entity"
	"github.com/ryderthieu/hospital-management-sub003/internal/domain/repository"
)

type fakeScheduleSource struct {
	schedules []entity.Schedule
	err       error
	calls     int
}

func (f *fakeScheduleSource) FetchSchedules(_ context.Context, _ int) ([]entity.Schedule, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules, nil
}

func schedulesFixture() []entity.Schedule {
	return []entity.Schedule{
		{ScheduleID: 1, WorkDate: day(2024, time.May, 13), StartTime: "07:00", EndTime: "11:00", Shift: entity.ShiftMorning, RoomNote: "Phòng 101"},
		{ScheduleID: 2, WorkDate: day(2024, time.May, 15), StartTime: "13:00", EndTime: "17:00", Shift: entity.ShiftAfternoon, RoomNote: "Phòng 101"},
		{ScheduleID: 3, WorkDate: day(2024, time.May, 28), StartTime: "21:00", EndTime: "01:00", Shift: entity.ShiftNight, RoomNote: "Phòng 202"},
	}
}

func newTestEngine(t *testing.T, scheds *fakeScheduleSource, appts *fakeAppointmentSource) *ViewEngine {
	t.Helper()
	directory := &fakeDirectory{doctor: &entity.DoctorInfo{DoctorID: 7, FullName: "Lê Minh"}}
	query := NewAppointmentQueryUsecase(testLogger(), appts, directory)
	engine := NewViewEngine(7, scheds, directory, query, 5*time.Minute, 10, testLogger(), nil)
	// Pin the view to a known period.
	engine.SetReference(context.Background(), day(2024, time.May, 15))
	return engine
}

func TestEngineLoadBuildsViewModel(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage(appointmentsFixture(), 0, 10, 3)}
	engine := newTestEngine(t, scheds, appts)

	snap := engine.Load(context.Background())

	if snap.Error != "" {
		t.Fatalf("unexpected error: %s", snap.Error)
	}
	if len(snap.CalendarDays) != 35 {
		t.Errorf("calendar days = %d, want 35 for May 2024", len(snap.CalendarDays))
	}
	// Week of May 13-19 holds schedules 1 and 2: 4h + 4h.
	if snap.TotalWeekHours != 8.0 {
		t.Errorf("week hours = %v, want 8.0", snap.TotalWeekHours)
	}
	// All three schedules fall in May; the night shift wraps midnight for 4h.
	if snap.TotalMonthHours != 12.0 {
		t.Errorf("month hours = %v, want 12.0", snap.TotalMonthHours)
	}
	if snap.Appointments == nil || snap.Appointments.VisibleCount != 3 {
		t.Errorf("appointments missing from snapshot: %+v", snap.Appointments)
	}
}

func TestEngineCachesSchedulesWithinTTL(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())
	engine.Load(context.Background())

	if scheds.calls != 1 {
		t.Errorf("schedule fetches = %d, want 1 within the TTL", scheds.calls)
	}
}

func TestEngineRefreshForcesRefetch(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())
	engine.Refresh(context.Background())

	if scheds.calls != 2 {
		t.Errorf("schedule fetches = %d, want 2 after forced refresh", scheds.calls)
	}
}

func TestEngineSelectDayTriggersNoFetch(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())
	schedCalls, pageCalls := scheds.calls, appts.fetchCalls

	snap := engine.SelectDay(day(2024, time.May, 15))

	if scheds.calls != schedCalls || appts.fetchCalls != pageCalls {
		t.Error("selecting a day must recompute from cache, not fetch")
	}
	if snap.SelectedDay == nil || !snap.SelectedDay.Equal(day(2024, time.May, 15)) {
		t.Fatalf("selected day = %v", snap.SelectedDay)
	}
	if len(snap.SelectedDayItems) != 1 {
		t.Errorf("selected day items = %d, want 1 (schedule 2)", len(snap.SelectedDayItems))
	}
}

func TestEngineFetchFailureKeepsLastGoodData(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())

	scheds.err = repository.NewFetchError("schedules", errors.New("connection refused"))
	snap := engine.Refresh(context.Background())

	if snap.Error == "" {
		t.Error("fetch failure should surface in the error field")
	}
	// The last good collection stays visible alongside the error flag.
	if snap.TotalMonthHours != 12.0 {
		t.Errorf("month hours = %v, want 12.0 from cached data", snap.TotalMonthHours)
	}
	if len(snap.CalendarDays) != 35 {
		t.Errorf("grid should still be built, got %d days", len(snap.CalendarDays))
	}
}

func TestEngineSetFiltersResetsPage(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 2, 10, 50)}
	engine := newTestEngine(t, scheds, appts)

	engine.SetPage(context.Background(), 2, 10)
	if appts.lastQuery.Page != 2 {
		t.Fatalf("page not forwarded to source: %+v", appts.lastQuery)
	}

	status := "CONFIRMED"
	snap := engine.SetFilters(context.Background(), entity.FilterPatch{Status: &status})

	if snap.PageNo != 0 {
		t.Errorf("page after filter change = %d, want 0", snap.PageNo)
	}
	if appts.lastQuery.Page != 0 {
		t.Errorf("source queried with page %d, want 0", appts.lastQuery.Page)
	}
	if appts.lastQuery.Status != "CONFIRMED" {
		t.Errorf("status not forwarded to server stage: %+v", appts.lastQuery)
	}
	if snap.Filter.Status != "CONFIRMED" {
		t.Errorf("filter not merged: %+v", snap.Filter)
	}
}

func TestEngineFilterChangeTriggersExactlyOneFetch(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	before := appts.fetchCalls
	term := "đau"
	engine.SetFilters(context.Background(), entity.FilterPatch{SearchTerm: &term})

	if got := appts.fetchCalls - before; got != 1 {
		t.Errorf("filter change triggered %d fetches, want exactly 1", got)
	}
}

func TestEngineNavigation(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)
	ctx := context.Background()

	snap := engine.NextPeriod(ctx)
	if !snap.ReferenceDate.Equal(day(2024, time.June, 15)) {
		t.Errorf("next month = %v, want 2024-06-15", snap.ReferenceDate)
	}

	snap = engine.PreviousPeriod(ctx)
	if !snap.ReferenceDate.Equal(day(2024, time.May, 15)) {
		t.Errorf("previous month = %v, want 2024-05-15", snap.ReferenceDate)
	}

	engine.SetViewMode(ctx, entity.ViewWeek)
	snap = engine.NextPeriod(ctx)
	if !snap.ReferenceDate.Equal(day(2024, time.May, 22)) {
		t.Errorf("next week = %v, want 2024-05-22", snap.ReferenceDate)
	}
	if len(snap.CalendarDays) != 7 {
		t.Errorf("week grid = %d days, want 7", len(snap.CalendarDays))
	}
}

func TestEngineRoomEnrichmentPlaceholder(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: []entity.Schedule{
		{ScheduleID: 1, WorkDate: day(2024, time.May, 15), StartTime: "07:00", EndTime: "11:00", RoomID: 5},
	}}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}

	directory := &fakeDirectory{
		doctor:  &entity.DoctorInfo{DoctorID: 7, FullName: "Lê Minh"},
		roomErr: repository.NewFetchError("room info", errors.New("timeout")),
	}
	query := NewAppointmentQueryUsecase(testLogger(), appts, directory)
	engine := NewViewEngine(7, scheds, directory, query, 5*time.Minute, 10, testLogger(), nil)
	engine.SetReference(context.Background(), day(2024, time.May, 15))

	snap := engine.Load(context.Background())

	if snap.Error != "" {
		t.Fatalf("room lookup failure must not fail the view build: %s", snap.Error)
	}
	found := false
	for _, d := range snap.CalendarDays {
		for _, item := range d.Items {
			if s, ok := item.(entity.Schedule); ok && s.ScheduleID == 1 {
				found = true
				if s.RoomNote != unknownRoomPlaceholder {
					t.Errorf("room note = %q, want placeholder", s.RoomNote)
				}
			}
		}
	}
	if !found {
		t.Error("schedule not attached to the grid")
	}
}

func TestEngineCachesAppointmentPageWithinTTL(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage(appointmentsFixture(), 0, 10, 3)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())
	engine.Load(context.Background())

	if appts.fetchCalls != 1 {
		t.Errorf("appointment fetches = %d, want 1 for unchanged filters within the TTL", appts.fetchCalls)
	}
	if scheds.calls != 1 {
		t.Errorf("schedule fetches = %d, want 1 within the TTL", scheds.calls)
	}
}

func TestEngineRefreshRefetchesAppointmentPage(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage(appointmentsFixture(), 0, 10, 3)}
	engine := newTestEngine(t, scheds, appts)

	engine.Load(context.Background())
	engine.Refresh(context.Background())

	if appts.fetchCalls != 2 {
		t.Errorf("appointment fetches = %d, want 2 after forced refresh", appts.fetchCalls)
	}
}

func TestEngineRefetchesAppointmentPageAfterTTL(t *testing.T) {
	current := time.Date(2024, time.May, 15, 8, 0, 0, 0, time.Local)
	now := func() time.Time { return current }

	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage(appointmentsFixture(), 0, 10, 3)}
	directory := &fakeDirectory{doctor: &entity.DoctorInfo{DoctorID: 7, FullName: "Lê Minh"}}
	query := NewAppointmentQueryUsecase(testLogger(), appts, directory)
	engine := NewViewEngine(7, scheds, directory, query, 5*time.Minute, 10, testLogger(), now)
	engine.SetReference(context.Background(), day(2024, time.May, 15))

	engine.Load(context.Background())
	current = current.Add(5 * time.Minute)
	engine.Load(context.Background())

	if appts.fetchCalls != 2 {
		t.Errorf("appointment fetches = %d, want 2 once the TTL elapsed", appts.fetchCalls)
	}
	if scheds.calls != 2 {
		t.Errorf("schedule fetches = %d, want 2 once the TTL elapsed", scheds.calls)
	}
}

// blockingAppointmentSource holds every page fetch in flight until released.
type blockingAppointmentSource struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
	page    entity.Page[entity.Appointment]
}

func (f *blockingAppointmentSource) FetchAppointmentPage(_ context.Context, _ int, q entity.AppointmentQuery) (entity.Page[entity.Appointment], error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	select {
	case f.started <- struct{}{}:
	default:
	}
	<-f.release
	return f.page, nil
}

func (f *blockingAppointmentSource) FetchAppointment(_ context.Context, _ int) (*entity.Appointment, error) {
	return nil, nil
}

func (f *blockingAppointmentSource) UpdateAppointmentStatus(_ context.Context, _ int, _ entity.AppointmentStatus) error {
	return nil
}

func (f *blockingAppointmentSource) UpdateAppointmentNotes(_ context.Context, _ int, _ string) error {
	return nil
}

func TestEngineConcurrentLoadsShareOneFetch(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &blockingAppointmentSource{
		page:    entity.NewPage([]entity.Appointment{}, 0, 10, 0),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	directory := &fakeDirectory{doctor: &entity.DoctorInfo{DoctorID: 7, FullName: "Lê Minh"}}
	query := NewAppointmentQueryUsecase(testLogger(), appts, directory)
	engine := NewViewEngine(7, scheds, directory, query, 5*time.Minute, 10, testLogger(), nil)
	engine.SetReference(context.Background(), day(2024, time.May, 15))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); engine.Load(context.Background()) }()
	<-appts.started
	go func() { defer wg.Done(); engine.Load(context.Background()) }()
	// Let the second caller reach the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(appts.release)
	wg.Wait()

	appts.mu.Lock()
	calls := appts.calls
	appts.mu.Unlock()
	if calls != 1 {
		t.Errorf("concurrent loads made %d fetches, want one shared in-flight fetch", calls)
	}
}

// stallingAppointmentSource answers immediately except for the SLOW status,
// which it holds until released. Used to resolve requests out of order.
type stallingAppointmentSource struct {
	started chan struct{}
	release chan struct{}
}

func (f *stallingAppointmentSource) FetchAppointmentPage(_ context.Context, _ int, q entity.AppointmentQuery) (entity.Page[entity.Appointment], error) {
	if q.Status == "SLOW" {
		f.started <- struct{}{}
		<-f.release
		return entity.NewPage([]entity.Appointment{{AppointmentID: 1}}, q.Page, q.Size, 1), nil
	}
	return entity.NewPage([]entity.Appointment{{AppointmentID: 2}}, q.Page, q.Size, 1), nil
}

func (f *stallingAppointmentSource) FetchAppointment(_ context.Context, _ int) (*entity.Appointment, error) {
	return nil, nil
}

func (f *stallingAppointmentSource) UpdateAppointmentStatus(_ context.Context, _ int, _ entity.AppointmentStatus) error {
	return nil
}

func (f *stallingAppointmentSource) UpdateAppointmentNotes(_ context.Context, _ int, _ string) error {
	return nil
}

func TestEngineDiscardsResponseOlderThanApplied(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &stallingAppointmentSource{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	directory := &fakeDirectory{doctor: &entity.DoctorInfo{DoctorID: 7, FullName: "Lê Minh"}}
	query := NewAppointmentQueryUsecase(testLogger(), appts, directory)
	engine := NewViewEngine(7, scheds, directory, query, 5*time.Minute, 10, testLogger(), nil)
	engine.SetReference(context.Background(), day(2024, time.May, 15))

	// First request stalls in flight.
	var wg sync.WaitGroup
	wg.Add(1)
	slow := "SLOW"
	go func() {
		defer wg.Done()
		engine.SetFilters(context.Background(), entity.FilterPatch{Status: &slow})
	}()
	<-appts.started

	// Second request resolves first and gets applied.
	fast := "FAST"
	engine.SetFilters(context.Background(), entity.FilterPatch{Status: &fast})

	close(appts.release)
	wg.Wait()

	snap := engine.Snapshot()
	if snap.Appointments == nil || len(snap.Appointments.Refined) != 1 {
		t.Fatalf("unexpected page view: %+v", snap.Appointments)
	}
	if got := snap.Appointments.Refined[0].AppointmentID; got != 2 {
		t.Errorf("applied appointment id = %d, want 2; the earlier request resolved late and must be discarded", got)
	}
}

func TestEngineSubscribersNotified(t *testing.T) {
	scheds := &fakeScheduleSource{schedules: schedulesFixture()}
	appts := &fakeAppointmentSource{page: entity.NewPage([]entity.Appointment{}, 0, 10, 0)}
	engine := newTestEngine(t, scheds, appts)

	var snapshots []ViewSnapshot
	engine.Subscribe(func(s ViewSnapshot) { snapshots = append(snapshots, s) })

	engine.SelectDay(day(2024, time.May, 15))

	if len(snapshots) == 0 {
		t.Fatal("subscriber not notified on state change")
	}
	last := snapshots[len(snapshots)-1]
	if last.SelectedDay == nil {
		t.Error("notified snapshot missing the selected day")
	}
}
