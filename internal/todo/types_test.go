package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"OPEN", StatusOpen, false},
		{"inprogress", StatusInProgress, false},
		{" DONE ", StatusDone, false},
		{"BOGUS", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInvalidStatusError(t *testing.T) {
	_, err := ParseStatus("BOGUS")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	want := "invalid status: BOGUS, valid status: OPEN/INPROGRESS/DONE"
	if err.Error() != want {
		t.Errorf("message: got %q, want %q", err.Error(), want)
	}

	var se *InvalidStatusError
	if !errors.As(err, &se) || se.Value != "BOGUS" {
		t.Errorf("expected *InvalidStatusError with value BOGUS, got %#v", err)
	}
}

func TestFilterValidAndMatch(t *testing.T) {
	open := Task{ID: 1, Desc: "a", Status: StatusOpen}
	done := Task{ID: 2, Desc: "b", Status: StatusDone}

	if !FilterAll.Match(open) || !FilterAll.Match(done) {
		t.Error("ALL should match every task")
	}
	if !FilterOpen.Match(open) || FilterOpen.Match(done) {
		t.Error("OPEN filter matched wrong tasks")
	}
	if Filter("NOPE").Valid() {
		t.Error("NOPE should not be a valid filter")
	}
	if Filter("NOPE").Match(open) {
		t.Error("invalid filter should match nothing")
	}
	for _, f := range Filters() {
		if !f.Valid() {
			t.Errorf("Filters() returned invalid %q", f)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in     string
		want   Filter
		wantOK bool
	}{
		{"", FilterAll, true},
		{"all", FilterAll, true},
		{"done", FilterDone, true},
		{"INPROGRESS", FilterInProgress, true},
		{"NOPE", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseFilter(%q): got (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDraftNormalize(t *testing.T) {
	got, err := Draft{Desc: "x"}.Normalize()
	if err != nil || got != StatusOpen {
		t.Errorf("empty status: got (%q, %v), want OPEN", got, err)
	}
	got, err = Draft{Desc: "x", Status: StatusDone}.Normalize()
	if err != nil || got != StatusDone {
		t.Errorf("DONE: got (%q, %v), want DONE", got, err)
	}
	if _, err := (Draft{Desc: "x", Status: "later"}).Normalize(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("invalid status: expected ErrInvalidArgument, got %v", err)
	}
}

func TestFilterTasksAndCounts(t *testing.T) {
	tasks := []Task{
		{ID: 2, Desc: "c", Status: StatusDone},
		{ID: 1, Desc: "b", Status: StatusOpen},
		{ID: 0, Desc: "a", Status: StatusDone},
	}

	done := FilterTasks(tasks, FilterDone)
	if len(done) != 2 || done[0].ID != 2 || done[1].ID != 0 {
		t.Errorf("FilterTasks(DONE): got %+v", done)
	}

	counts := CountByStatus(tasks)
	if counts[StatusDone] != 2 || counts[StatusOpen] != 1 || counts[StatusInProgress] != 0 {
		t.Errorf("CountByStatus: got %v", counts)
	}
}

func TestEncodeDecode(t *testing.T) {
	tasks := []Task{
		{ID: 3, Desc: "buy milk", Status: StatusOpen},
		{ID: 1, Desc: "", Status: StatusDone},
	}

	data, err := Encode(tasks)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "[") {
		t.Fatalf("expected JSON array, got %s", data)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 2 || got[0] != tasks[0] || got[1] != tasks[1] {
		t.Errorf("round trip: got %+v, want %+v", got, tasks)
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Encode(nil): got %s, want []", data)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{name: "empty", data: "  "},
		{name: "not json", data: "{oops"},
		{name: "object not array", data: `{"desc":"x"}`},
		{name: "null", data: "null"},
		{name: "bad status", data: `[{"id":0,"desc":"x","status":"LATER"}]`, wantPath: "[0].status"},
		{name: "missing desc", data: `[{"id":0,"status":"OPEN"}]`, wantPath: "[0]"},
		{name: "negative id", data: `[{"id":-1,"desc":"x","status":"OPEN"}]`, wantPath: "[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantPath == "" {
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if ve.Path != tt.wantPath {
				t.Errorf("path: got %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestDecodeToleratesMissingID(t *testing.T) {
	got, err := Decode([]byte(`[{"desc":"x","status":"OPEN","extra":true}]`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 1 || got[0].Desc != "x" {
		t.Errorf("got %+v", got)
	}
}

func TestDecodeAcceptsIntegralNumberIDs(t *testing.T) {
	data := `[{"id":1.0,"desc":"a","status":"OPEN"},{"id":1e20,"desc":"b","status":"DONE"},{"id":7,"desc":"c","status":"OPEN"}]`
	got, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Task{
		{ID: 1, Desc: "a", Status: StatusOpen},
		{ID: 0, Desc: "b", Status: StatusDone},
		{ID: 7, Desc: "c", Status: StatusOpen},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
