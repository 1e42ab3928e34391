package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const (
	CollectionKey       = "schedules"
	invalidInputMessage = "Mohon lengkapi semua bidang jadwal yang valid."
)

var ErrScheduleNotFound = fmt.Errorf("schedule %w", collection.ErrNotFound)

type Schedule struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location,omitempty"`
}

func (s Schedule) RecordId() string {
	return s.Id
}

func (s Schedule) Instant(loc *time.Location) time.Time {
	t, err := view.ParseInstant(s.Date, s.Time, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Input struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
}

type Service interface {
	GetAll(ctx context.Context) []Schedule
	Get(ctx context.Context, id string) (Schedule, error)
	Create(ctx context.Context, input Input) (Schedule, error)
	Update(ctx context.Context, id string, input Input) (Schedule, error)
	Delete(ctx context.Context, id string, confirm view.Confirmation) error
}

type ServiceImpl struct {
	schedules *collection.Collection[Schedule]
}

func NewService(schedules *collection.Collection[Schedule]) *ServiceImpl {
	return &ServiceImpl{schedules: schedules}
}

func (s *ServiceImpl) GetAll(ctx context.Context) []Schedule {
	return s.schedules.All()
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Schedule, error) {
	found, ok := s.schedules.Find(id)
	if !ok {
		return Schedule{}, ErrScheduleNotFound
	}
	return found, nil
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (Schedule, error) {
	created, err := validate(input)
	if err != nil {
		return Schedule{}, err
	}
	created.Id = uuid.NewString()
	if err := s.schedules.Append(ctx, created); err != nil {
		return Schedule{}, err
	}
	log.Debugf("created schedule %s (%s)", created.Id, created.Title)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, input Input) (Schedule, error) {
	changes, err := validate(input)
	if err != nil {
		return Schedule{}, err
	}
	updated, err := s.schedules.Update(ctx, id, func(current Schedule) (Schedule, error) {
		changes.Id = current.Id
		return changes, nil
	})
	if errors.Is(err, collection.ErrNotFound) {
		log.Warnf("schedule not updated, it does not exist (%s)", id)
		return Schedule{}, ErrScheduleNotFound
	}
	return updated, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string, confirm view.Confirmation) error {
	if confirm == nil || !confirm() {
		return view.ErrNotConfirmed
	}
	if err := s.schedules.Remove(ctx, id); err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return nil
}

func validate(input Input) (Schedule, error) {
	s := Schedule{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Date:        strings.TrimSpace(input.Date),
		Time:        strings.TrimSpace(input.Time),
		Location:    strings.TrimSpace(input.Location),
	}
	if s.Title == "" || s.Description == "" || !view.ValidDate(s.Date) || !view.ValidTime(s.Time) {
		return Schedule{}, view.Invalid(invalidInputMessage)
	}
	return s, nil
}
