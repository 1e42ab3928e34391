package contest

import (
	"fmt"

	"github.com/kampung/agustusan/pkg/collection"
)

const CollectionKey = "contests"

var ErrContestNotFound = fmt.Errorf("contest %w", collection.ErrNotFound)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOngoing  Status = "ongoing"
	StatusFinished Status = "finished"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusFinished:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusUpcoming:
		return "Akan Datang"
	case StatusOngoing:
		return "Sedang Berlangsung"
	default:
		return "Selesai"
	}
}

type Contest struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Prize   string `json:"prize"`
	Status  Status `json:"status"`
	Winner  string `json:"winner,omitempty"`
}

func (c Contest) RecordId() string {
	return c.Id
}

type Input struct {
	Name    string
	Details string
	Date    string
	Time    string
	Prize   string
	Status  string
	Winner  string
}
