package doorprize

import (
	"fmt"

	"github.com/kampung/agustusan/pkg/view"
)

const (
	GridEmptyMessage   = "Belum ada kupon"
	TableEmptyMessage  = "Belum ada doorprize."
	PrizesEmptyMessage = "Daftar hadiah belum ditentukan."
	DeleteQuestion     = "Apakah Anda yakin ingin menghapus doorprize ini?"
)

type Counts struct {
	Available int
	Taken     int
	Total     int
}

func Count(doorprizes []Doorprize) Counts {
	c := Counts{Total: len(doorprizes)}
	for _, d := range doorprizes {
		switch d.Status {
		case StatusAvailable:
			c.Available++
		case StatusTaken:
			c.Taken++
		}
	}
	return c
}

func (c Counts) String() string {
	return fmt.Sprintf("Tersedia: %d | Terambil: %d | Total: %d", c.Available, c.Taken, c.Total)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type Row struct {
	Doorprize
	StatusLabel string
	WinnerLabel string
	DetailLabel string
	Actions     []view.RowAction
}

type PageView struct {
	Counts
	Summary     string
	Prizes      []string
	PrizesEmpty string
	// Rows are in insertion order and feed both the grid and the table.
	Rows       []Row
	GridEmpty  string
	TableEmpty string
	Form       Doorprize
	// DrawingId is set right after a draw, while its reveal is pending.
	DrawingId string
}

func Render(doorprizes []Doorprize, prizes []string, editing *Doorprize, drawingId string) PageView {
	counts := Count(doorprizes)
	p := PageView{
		Counts:    counts,
		Summary:   counts.String(),
		Prizes:    prizes,
		DrawingId: drawingId,
	}
	if len(prizes) == 0 {
		p.PrizesEmpty = PrizesEmptyMessage
	}
	if len(doorprizes) == 0 {
		p.GridEmpty = GridEmptyMessage
		p.TableEmpty = TableEmptyMessage
	}
	for _, d := range doorprizes {
		p.Rows = append(p.Rows, Row{
			Doorprize:   d,
			StatusLabel: d.Status.Label(),
			WinnerLabel: orDash(d.Winner),
			DetailLabel: orDash(d.Detail),
			Actions:     view.RowActions(d.Id, DeleteQuestion),
		})
	}
	if editing != nil {
		p.Form = *editing
	} else {
		p.Form = Doorprize{Status: StatusAvailable}
	}
	return p
}

// RevealMessage is shown once the drawn coupon is revealed.
func RevealMessage(d Doorprize) string {
	prize := d.Detail
	if prize == "" {
		prize = "hadiah"
	}
	return fmt.Sprintf("Selamat! Kupon nomor %s (%s) telah diundi! Masukkan nama pemenang.", d.Number, prize)
}
