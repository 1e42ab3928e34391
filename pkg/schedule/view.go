package schedule

import (
	"sort"
	"time"

	"github.com/kampung/agustusan/pkg/view"
)

const (
	NextEmptyMessage     = "Tidak ada jadwal mendatang."
	TimelineEmptyMessage = "Belum ada Jadwal Kegiatan"
	TableEmptyMessage    = "Belum ada jadwal."
	DeleteQuestion       = "Apakah Anda yakin ingin menghapus jadwal ini?"
)

func SortByInstant(schedules []Schedule, loc *time.Location) []Schedule {
	sorted := append([]Schedule(nil), schedules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Instant(loc).Before(sorted[j].Instant(loc))
	})
	return sorted
}

// Next returns the earliest schedule of today or later. A schedule that
// already started earlier today still counts, the day is judged in now's
// location.
func Next(schedules []Schedule, now time.Time) (Schedule, bool) {
	loc := now.Location()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	for _, s := range SortByInstant(schedules, loc) {
		if !s.Instant(loc).Before(startOfDay) {
			return s, true
		}
	}
	return Schedule{}, false
}

type Row struct {
	Schedule
	When          string
	LocationLabel string
	Actions       []view.RowAction
}

type PageView struct {
	Next          *Row
	NextEmpty     string
	Rows          []Row
	TimelineEmpty string
	TableEmpty    string
	Form          Schedule
}

func newRow(s Schedule) Row {
	location := s.Location
	if location == "" {
		location = "-"
	}
	return Row{
		Schedule:      s,
		When:          view.FormatDateTime(s.Date, s.Time),
		LocationLabel: location,
		Actions:       view.RowActions(s.Id, DeleteQuestion),
	}
}

func Render(schedules []Schedule, now time.Time, editing *Schedule) PageView {
	var p PageView
	if next, ok := Next(schedules, now); ok {
		row := newRow(next)
		p.Next = &row
	} else {
		p.NextEmpty = NextEmptyMessage
	}
	if len(schedules) == 0 {
		p.TimelineEmpty = TimelineEmptyMessage
		p.TableEmpty = TableEmptyMessage
	}
	for _, s := range SortByInstant(schedules, now.Location()) {
		p.Rows = append(p.Rows, newRow(s))
	}
	if editing != nil {
		p.Form = *editing
	}
	return p
}
