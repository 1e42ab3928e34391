package contest

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const invalidInputMessage = "Mohon lengkapi semua bidang lomba yang valid."

type Service interface {
	GetAll(ctx context.Context) []Contest
	Get(ctx context.Context, id string) (Contest, error)
	Create(ctx context.Context, input Input) (Contest, error)
	Update(ctx context.Context, id string, input Input) (Contest, error)
	Delete(ctx context.Context, id string, confirm view.Confirmation) error
}

type ServiceImpl struct {
	contests *collection.Collection[Contest]
}

func NewService(contests *collection.Collection[Contest]) *ServiceImpl {
	return &ServiceImpl{contests: contests}
}

func (s *ServiceImpl) GetAll(ctx context.Context) []Contest {
	return s.contests.All()
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Contest, error) {
	c, ok := s.contests.Find(id)
	if !ok {
		return Contest{}, ErrContestNotFound
	}
	return c, nil
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (Contest, error) {
	c, err := validate(input)
	if err != nil {
		return Contest{}, err
	}
	c.Id = uuid.NewString()
	if err := s.contests.Append(ctx, c); err != nil {
		return Contest{}, err
	}
	log.Debugf("created contest %s (%s)", c.Id, c.Name)
	return c, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, input Input) (Contest, error) {
	changes, err := validate(input)
	if err != nil {
		return Contest{}, err
	}
	updated, err := s.contests.Update(ctx, id, func(c Contest) (Contest, error) {
		changes.Id = c.Id
		return changes, nil
	})
	if errors.Is(err, collection.ErrNotFound) {
		log.Warnf("contest not updated, it does not exist (%s)", id)
		return Contest{}, ErrContestNotFound
	}
	return updated, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string, confirm view.Confirmation) error {
	if confirm == nil || !confirm() {
		return view.ErrNotConfirmed
	}
	if err := s.contests.Remove(ctx, id); err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrContestNotFound
		}
		return err
	}
	return nil
}

func validate(input Input) (Contest, error) {
	c := Contest{
		Name:    strings.TrimSpace(input.Name),
		Details: strings.TrimSpace(input.Details),
		Date:    strings.TrimSpace(input.Date),
		Time:    strings.TrimSpace(input.Time),
		Prize:   strings.TrimSpace(input.Prize),
		Status:  Status(strings.TrimSpace(input.Status)),
		Winner:  strings.TrimSpace(input.Winner),
	}
	if c.Name == "" || c.Details == "" || c.Prize == "" {
		return Contest{}, view.Invalid(invalidInputMessage)
	}
	if !view.ValidDate(c.Date) || !view.ValidTime(c.Time) || !c.Status.Valid() {
		return Contest{}, view.Invalid(invalidInputMessage)
	}
	return c, nil
}
