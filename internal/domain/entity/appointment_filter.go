package entity

import "fmt"

// AppointmentFilter holds every recognized filter option. Zero values mean
// "no constraint". Status and Gender additionally treat "all" as unset.
type AppointmentFilter struct {
	Date       string // client-side single-day filter, format YYYY-MM-DD
	WorkDate   string // server-side exact match, format YYYY-MM-DD
	Status     string // appointment status or "all"
	Shift      string
	RoomID     int
	Gender     string // gender or "all"
	SearchTerm string // case-insensitive, symptoms OR patient full name
}

// FilterPatch is a partial filter update; nil fields leave the current value
// untouched.
type FilterPatch struct {
	Date       *string
	WorkDate   *string
	Status     *string
	Shift      *string
	RoomID     *int
	Gender     *string
	SearchTerm *string
}

// Apply merges the patch into a copy of the filter and returns it.
func (f AppointmentFilter) Apply(patch FilterPatch) AppointmentFilter {
	if patch.Date != nil {
		f.Date = *patch.Date
	}
	if patch.WorkDate != nil {
		f.WorkDate = *patch.WorkDate
	}
	if patch.Status != nil {
		f.Status = *patch.Status
	}
	if patch.Shift != nil {
		f.Shift = *patch.Shift
	}
	if patch.RoomID != nil {
		f.RoomID = *patch.RoomID
	}
	if patch.Gender != nil {
		f.Gender = *patch.Gender
	}
	if patch.SearchTerm != nil {
		f.SearchTerm = *patch.SearchTerm
	}
	return f
}

// AppointmentQuery carries the server-resolvable filter stage alongside
// pagination. Built by QueryParams; the client-only refinements (Date,
// Gender, SearchTerm) never appear here.
type AppointmentQuery struct {
	Page     int
	Size     int
	WorkDate string
	Status   string
	Shift    string
	RoomID   int
}

// QueryParams translates the server-resolvable options into a query for the
// external data source. A Status of "all" is dropped, matching the upstream
// contract.
func (f AppointmentFilter) QueryParams(page, size int) AppointmentQuery {
	q := AppointmentQuery{
		Page:     page,
		Size:     size,
		WorkDate: f.WorkDate,
		Shift:    f.Shift,
		RoomID:   f.RoomID,
	}
	if f.Status != "" && f.Status != "all" {
		q.Status = f.Status
	}
	return q
}

// CacheKey renders a stable identity for one (filter, page) combination,
// used to deduplicate overlapping in-flight fetches.
func (q AppointmentQuery) CacheKey() string {
	return fmt.Sprintf("appointments|p=%d|s=%d|d=%s|st=%s|sh=%s|r=%d",
		q.Page, q.Size, q.WorkDate, q.Status, q.Shift, q.RoomID)
}

// CacheKey identifies one refined page. It extends the server query key with
// the client-side refinements, since the refined result depends on those as
// much as on what the server returned.
func (f AppointmentFilter) CacheKey(page, size int) string {
	return fmt.Sprintf("%s|cd=%s|g=%s|q=%s",
		f.QueryParams(page, size).CacheKey(), f.Date, f.Gender, f.SearchTerm)
}
