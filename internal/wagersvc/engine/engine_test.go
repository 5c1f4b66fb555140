package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/greenside/wager-services/internal/wagersvc/models"
)

// Shared fixtures for the calculator tests. Courses are flat par-4s with
// handicap rank equal to hole number unless a test says otherwise.

func intp(v int) *int { return &v }

func i64p(v int64) *int64 { return &v }

func money(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func testHoles(count int) []models.Hole {
	holes := make([]models.Hole, 0, count)
	for i := 1; i <= count; i++ {
		holes = append(holes, models.Hole{HoleNumber: i, Par: 4, HandicapRank: i})
	}
	return holes
}

// testPlayer builds a player whose strokes fill holes 1..len(strokes).
// A stroke of 0 leaves that hole unscored.
func testPlayer(id int64, name string, hcp int, strokes ...int) models.Player {
	p := models.Player{UserID: id, Name: name, CourseHandicap: intp(hcp)}
	for i, s := range strokes {
		score := models.Score{HoleNumber: i + 1}
		if s > 0 {
			score.Strokes = intp(s)
		}
		p.Scores = append(p.Scores, score)
	}
	return p
}

// flatScores is count holes of strokes apiece.
func flatScores(strokes, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = strokes
	}
	return out
}

func assertZeroSum(t *testing.T, m map[int64]decimal.Decimal) {
	t.Helper()
	sum := decimal.Zero
	for _, v := range m {
		sum = sum.Add(v)
	}
	assert.True(t, sum.IsZero(), "money should sum to zero, got %s", sum)
}
