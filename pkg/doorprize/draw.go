package doorprize

import (
	"fmt"
	"strconv"
	"strings"
)

// Rand is the source of randomness for drawing. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type DrawResult struct {
	Doorprize Doorprize
	// PrizeAssigned is set when Detail was picked from the prize list.
	PrizeAssigned bool
}

// Draw picks one available doorprize uniformly at random and returns it
// marked as taken. A doorprize without a prize gets one picked uniformly
// from prizes. records is not modified.
func Draw(records []Doorprize, rng Rand, prizes []string) (DrawResult, error) {
	var available []Doorprize
	for _, d := range records {
		if d.Status == StatusAvailable {
			available = append(available, d)
		}
	}
	if len(available) == 0 {
		return DrawResult{}, ErrNothingToDraw
	}

	drawn := available[rng.IntN(len(available))]
	drawn.Status = StatusTaken
	result := DrawResult{}
	if strings.TrimSpace(drawn.Detail) == "" && len(prizes) > 0 {
		drawn.Detail = prizes[rng.IntN(len(prizes))]
		result.PrizeAssigned = true
	}
	result.Doorprize = drawn
	return result, nil
}

// nextNumber is one above the highest numeric coupon number. Numbers that
// are not plain integers are ignored.
func nextNumber(records []Doorprize) int {
	highest := 0
	for _, d := range records {
		n, err := strconv.Atoi(strings.TrimSpace(d.Number))
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return highest + 1
}

func formatNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}
