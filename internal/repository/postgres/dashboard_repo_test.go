package postgres

import (
	"testing"

	"recruitflow-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSourceDistributionFrom(t *testing.T) {
	t.Run("Should map attribution buckets onto the distribution", func(t *testing.T) {
		dist := sourceDistributionFrom(map[string]int64{
			domain.SourcePartner:   6,
			domain.SourceRecruiter: 2,
			domain.SourceUser:      4,
		})

		assert.Equal(t, int64(6), dist.Partner)
		assert.Equal(t, int64(2), dist.Recruiter)
		assert.Equal(t, int64(4), dist.User)
	})

	t.Run("Should never count a channel tag as a direct user submission", func(t *testing.T) {
		// The source column stores display tags like LINKEDIN; only the
		// three attribution buckets exist after grouping.
		dist := sourceDistributionFrom(map[string]int64{
			"LINKEDIN":           3,
			domain.SourcePartner: 2,
		})

		assert.Equal(t, int64(2), dist.Partner)
		assert.Zero(t, dist.User)
		assert.Zero(t, dist.Recruiter)
	})
}
