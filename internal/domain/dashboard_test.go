package domain_test

import (
	"testing"
	"time"

	"recruitflow-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFillDailySeries(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should produce one point per day with zeros for gaps", func(t *testing.T) {
		data := []domain.DayCount{
			{Date: start.AddDate(0, 0, 1), Count: 3},
			{Date: start.AddDate(0, 0, 4), Count: 7},
		}

		series := domain.FillDailySeries(data, start, 7)

		assert.Len(t, series, 7)
		assert.Equal(t, "2026-03-01", series[0].Date)
		assert.Equal(t, int64(0), series[0].Count)
		assert.Equal(t, int64(3), series[1].Count)
		assert.Equal(t, int64(0), series[2].Count)
		assert.Equal(t, int64(7), series[4].Count)
		assert.Equal(t, "2026-03-07", series[6].Date)
	})

	t.Run("Should be dense even with no data", func(t *testing.T) {
		series := domain.FillDailySeries(nil, start, 30)

		assert.Len(t, series, 30)
		for _, p := range series {
			assert.Equal(t, int64(0), p.Count)
		}
	})
}

func TestRate(t *testing.T) {
	t.Run("Should round to one decimal", func(t *testing.T) {
		assert.Equal(t, 33.3, domain.Rate(1, 3))
		assert.Equal(t, 66.7, domain.Rate(2, 3))
		assert.Equal(t, 50.0, domain.Rate(1, 2))
	})

	t.Run("Should return 0 on zero denominator", func(t *testing.T) {
		assert.Equal(t, 0.0, domain.Rate(5, 0))
		assert.Equal(t, 0.0, domain.Rate(0, 0))
	})
}

func TestPercentChange(t *testing.T) {
	t.Run("Should compute signed change against previous window", func(t *testing.T) {
		assert.Equal(t, 50.0, domain.PercentChange(15, 10))
		assert.Equal(t, -25.0, domain.PercentChange(6, 8))
		assert.Equal(t, 0.0, domain.PercentChange(10, 10))
	})

	t.Run("Should handle zero previous window", func(t *testing.T) {
		assert.Equal(t, 0.0, domain.PercentChange(0, 0))
		assert.Equal(t, 100.0, domain.PercentChange(4, 0))
	})
}
