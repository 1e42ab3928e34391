package contest

import (
	"sort"
	"time"

	"github.com/kampung/agustusan/pkg/view"
)

const (
	EmptyMessage   = "Belum ada lomba yang terdaftar."
	DeleteQuestion = "Apakah Anda yakin ingin menghapus lomba ini?"
)

type Stats struct {
	Total    int
	Upcoming int
}

// Instant is the moment the contest starts in loc. Unparseable dates sort
// first.
func (c Contest) Instant(loc *time.Location) time.Time {
	t, err := view.ParseInstant(c.Date, c.Time, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Summarize counts all contests and those starting now or later.
func Summarize(contests []Contest, now time.Time) Stats {
	s := Stats{Total: len(contests)}
	for _, c := range contests {
		if !c.Instant(now.Location()).Before(now) {
			s.Upcoming++
		}
	}
	return s
}

func SortByInstant(contests []Contest, loc *time.Location) []Contest {
	sorted := append([]Contest(nil), contests...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Instant(loc).Before(sorted[j].Instant(loc))
	})
	return sorted
}

type Row struct {
	Contest
	When        string
	StatusLabel string
	WinnerLabel string
	Actions     []view.RowAction
}

type PageView struct {
	Stats
	Rows  []Row
	Empty string
	Form  Contest
}

func Render(contests []Contest, now time.Time, editing *Contest) PageView {
	p := PageView{Stats: Summarize(contests, now)}
	if len(contests) == 0 {
		p.Empty = EmptyMessage
	}
	for _, c := range SortByInstant(contests, now.Location()) {
		winner := c.Winner
		if winner == "" {
			winner = "-"
		}
		p.Rows = append(p.Rows, Row{
			Contest:     c,
			When:        view.FormatDateTime(c.Date, c.Time),
			StatusLabel: c.Status.Label(),
			WinnerLabel: winner,
			Actions:     view.RowActions(c.Id, DeleteQuestion),
		})
	}
	if editing != nil {
		p.Form = *editing
	} else {
		p.Form = Contest{Status: StatusUpcoming}
	}
	return p
}
