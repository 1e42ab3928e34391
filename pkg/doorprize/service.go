package doorprize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/kampung/agustusan/pkg/collection"
	"github.com/kampung/agustusan/pkg/view"
	log "github.com/sirupsen/logrus"
)

const invalidInputMessage = "Mohon lengkapi nomor kupon dan status."

type Service interface {
	GetAll(ctx context.Context) []Doorprize
	Get(ctx context.Context, id string) (Doorprize, error)
	Create(ctx context.Context, input Input) (Doorprize, error)
	Update(ctx context.Context, id string, input Input) (Doorprize, error)
	Delete(ctx context.Context, id string, confirm view.Confirmation) error
	Generate(ctx context.Context, count, start int) (GenerateResult, error)
	Draw(ctx context.Context) (DrawResult, error)
	Prizes() []string
}

type ServiceImpl struct {
	doorprizes *collection.Collection[Doorprize]
	rng        Rand
	prizes     []string
}

// NewService creates the doorprize service. A nil rng draws from an
// unseeded PCG source.
func NewService(doorprizes *collection.Collection[Doorprize], rng Rand, prizes []string) *ServiceImpl {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ServiceImpl{doorprizes: doorprizes, rng: rng, prizes: prizes}
}

func (s *ServiceImpl) GetAll(ctx context.Context) []Doorprize {
	return s.doorprizes.All()
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Doorprize, error) {
	d, ok := s.doorprizes.Find(id)
	if !ok {
		return Doorprize{}, ErrDoorprizeNotFound
	}
	return d, nil
}

func (s *ServiceImpl) Prizes() []string {
	return append([]string(nil), s.prizes...)
}

func (s *ServiceImpl) Create(ctx context.Context, input Input) (Doorprize, error) {
	d, err := validate(input)
	if err != nil {
		return Doorprize{}, err
	}
	d.Id = uuid.NewString()

	err = s.doorprizes.Mutate(ctx, "create", func(current []Doorprize) ([]Doorprize, []string, error) {
		if numberTaken(current, d.Number, "") {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, d.Number)
		}
		return append(current, d), []string{d.Id}, nil
	})
	if err != nil {
		return Doorprize{}, err
	}
	return d, nil
}

// Update replaces the mutable fields. The number must stay unique and a
// taken doorprize cannot be made available again.
func (s *ServiceImpl) Update(ctx context.Context, id string, input Input) (Doorprize, error) {
	changes, err := validate(input)
	if err != nil {
		return Doorprize{}, err
	}

	var updated Doorprize
	err = s.doorprizes.Mutate(ctx, "update", func(current []Doorprize) ([]Doorprize, []string, error) {
		for i, d := range current {
			if d.Id != id {
				continue
			}
			if d.Status == StatusTaken && changes.Status == StatusAvailable {
				return nil, nil, ErrInvalidTransition
			}
			if numberTaken(current, changes.Number, id) {
				return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, changes.Number)
			}
			changes.Id = id
			current[i] = changes
			updated = changes
			return current, []string{id}, nil
		}
		return nil, nil, ErrDoorprizeNotFound
	})
	if errors.Is(err, collection.ErrNotFound) {
		log.Warnf("doorprize not updated, it does not exist (%s)", id)
	}
	return updated, err
}

func (s *ServiceImpl) Delete(ctx context.Context, id string, confirm view.Confirmation) error {
	if confirm == nil || !confirm() {
		return view.ErrNotConfirmed
	}
	if err := s.doorprizes.Remove(ctx, id); err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrDoorprizeNotFound
		}
		return err
	}
	return nil
}

// Generate adds count available coupons with consecutive numbers. Numbering
// starts at start, or after the highest existing number when start is not
// positive. Candidates equal to an existing number are skipped. At most
// MaxGenerate coupons are created per call.
func (s *ServiceImpl) Generate(ctx context.Context, count, start int) (GenerateResult, error) {
	if count <= 0 || count > MaxGenerate {
		return GenerateResult{}, ErrInvalidCount
	}

	result := GenerateResult{Requested: count}
	err := s.doorprizes.Mutate(ctx, "create", func(current []Doorprize) ([]Doorprize, []string, error) {
		first := start
		if first <= 0 {
			first = nextNumber(current)
		}
		if first <= 0 || first > math.MaxInt-count {
			return nil, nil, ErrInvalidStart
		}
		var ids []string
		for n := first; n < first+count; n++ {
			number := formatNumber(n)
			if numberTaken(current, number, "") {
				continue
			}
			d := Doorprize{Id: uuid.NewString(), Number: number, Status: StatusAvailable}
			current = append(current, d)
			result.Created = append(result.Created, d)
			ids = append(ids, d.Id)
		}
		return current, ids, nil
	})
	if err != nil {
		return GenerateResult{}, err
	}
	log.Infof("generated %d of %d requested doorprize number(s)", len(result.Created), count)
	return result, nil
}

// Draw decides the winning coupon and persists its taken status and prize
// in one step. The winner's name is added later through Update.
func (s *ServiceImpl) Draw(ctx context.Context) (DrawResult, error) {
	var result DrawResult
	err := s.doorprizes.Mutate(ctx, "update", func(current []Doorprize) ([]Doorprize, []string, error) {
		drawn, err := Draw(current, s.rng, s.prizes)
		if err != nil {
			return nil, nil, err
		}
		for i, d := range current {
			if d.Id == drawn.Doorprize.Id {
				current[i] = drawn.Doorprize
			}
		}
		result = drawn
		return current, []string{drawn.Doorprize.Id}, nil
	})
	if err != nil {
		return DrawResult{}, err
	}
	log.Infof("drew doorprize %s (%s)", result.Doorprize.Number, result.Doorprize.Detail)
	return result, nil
}

func numberTaken(records []Doorprize, number, exceptId string) bool {
	for _, d := range records {
		if d.Id != exceptId && d.Number == number {
			return true
		}
	}
	return false
}

func validate(input Input) (Doorprize, error) {
	d := Doorprize{
		Number: strings.TrimSpace(input.Number),
		Status: Status(strings.TrimSpace(input.Status)),
		Winner: strings.TrimSpace(input.Winner),
		Detail: strings.TrimSpace(input.Detail),
	}
	if d.Number == "" || !d.Status.Valid() {
		return Doorprize{}, view.Invalid(invalidInputMessage)
	}
	return d, nil
}
