package doorprize

import (
	"errors"
	"fmt"

	"github.com/kampung/agustusan/pkg/collection"
)

const CollectionKey = "doorprizes"

// MaxGenerate bounds a single Generate call.
const MaxGenerate = 999

var (
	ErrDoorprizeNotFound = fmt.Errorf("doorprize %w", collection.ErrNotFound)
	ErrDuplicateNumber   = errors.New("doorprize number already exists")
	ErrInvalidTransition = errors.New("a taken doorprize cannot become available again")
	ErrInvalidCount      = errors.New("count must be between 1 and 999")
	ErrInvalidStart      = errors.New("start number is out of range")
	ErrNothingToDraw     = errors.New("no available doorprize to draw")
)

// DefaultPrizes is drawn from when a drawn coupon has no prize assigned.
var DefaultPrizes = []string{
	"Sepeda Gunung", "TV LED 32 Inch", "Kulkas 1 Pintu", "Mesin Cuci",
	"Setrika Listrik", "Kipas Angin", "Kompor Gas", "Dispenser Air",
	"Rice Cooker", "Voucher Belanja Rp 100K", "Paket Sembako", "Payung",
	"Goodie Bag Merah Putih", "Kaos HUT RI", "Pulsa Rp 25K", "Power Bank",
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusTaken
}

func (s Status) Label() string {
	if s == StatusAvailable {
		return "Tersedia"
	}
	return "Terambil"
}

type Doorprize struct {
	Id     string `json:"id"`
	Number string `json:"number"`
	Status Status `json:"status"`
	Winner string `json:"winner"`
	Detail string `json:"detail"`
}

func (d Doorprize) RecordId() string {
	return d.Id
}

type Input struct {
	Number string
	Status string
	Winner string
	Detail string
}

// GenerateResult reports a bulk generation. Created may be lower than
// Requested when candidate numbers were already taken, and zero is a valid
// outcome.
type GenerateResult struct {
	Requested int
	Created   []Doorprize
}
