package entity

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusPendingTestResult, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusPendingTestResult, StatusCompleted, true},
		{StatusPendingTestResult, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusPendingTestResult} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if AppointmentStatus("NO_SHOW").Terminal() {
		t.Error("unknown status should not report terminal")
	}
}

func TestStatusKnown(t *testing.T) {
	if !StatusPendingTestResult.Known() {
		t.Error("PENDING_TEST_RESULT should be known")
	}
	if AppointmentStatus("NO_SHOW").Known() {
		t.Error("NO_SHOW should not be known")
	}
}

func TestFilterApply(t *testing.T) {
	status := "CONFIRMED"
	empty := ""
	base := AppointmentFilter{Status: "PENDING", SearchTerm: "flu"}

	merged := base.Apply(FilterPatch{Status: &status, SearchTerm: &empty})

	if merged.Status != "CONFIRMED" {
		t.Errorf("Status = %q, want CONFIRMED", merged.Status)
	}
	if merged.SearchTerm != "" {
		t.Errorf("SearchTerm = %q, want cleared", merged.SearchTerm)
	}
	// Untouched fields keep their value, the original is not mutated.
	if base.Status != "PENDING" {
		t.Errorf("base mutated: Status = %q", base.Status)
	}
}

func TestQueryParamsDropsClientOnlyOptions(t *testing.T) {
	f := AppointmentFilter{
		Date:       "2024-05-15",
		WorkDate:   "2024-05-15",
		Status:     "all",
		Shift:      "MORNING",
		Gender:     "FEMALE",
		SearchTerm: "đau",
	}

	q := f.QueryParams(2, 20)

	if q.Status != "" {
		t.Errorf(`Status "all" should be dropped from server params, got %q`, q.Status)
	}
	if q.WorkDate != "2024-05-15" || q.Shift != "MORNING" {
		t.Errorf("server-resolvable options missing: %+v", q)
	}
	if q.Page != 2 || q.Size != 20 {
		t.Errorf("pagination not carried: %+v", q)
	}
}

func TestNewPageInvariants(t *testing.T) {
	tests := []struct {
		name       string
		contentLen int
		pageNo     int
		pageSize   int
		total      int64
		wantPages  int
		wantLast   bool
	}{
		{"first of three", 10, 0, 10, 25, 3, false},
		{"middle", 10, 1, 10, 25, 3, false},
		{"last partial", 5, 2, 10, 25, 3, true},
		{"exact fit", 10, 0, 10, 10, 1, true},
		{"empty", 0, 0, 10, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := make([]int, tt.contentLen)
			p := NewPage(content, tt.pageNo, tt.pageSize, tt.total)

			if len(p.Content) > p.PageSize {
				t.Errorf("content length %d exceeds page size %d", len(p.Content), p.PageSize)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.Last != tt.wantLast {
				t.Errorf("Last = %v, want %v", p.Last, tt.wantLast)
			}
			if p.Last != (p.PageNo == p.TotalPages-1) {
				t.Error("Last does not match the pageNo == totalPages-1 invariant")
			}
		})
	}
}
