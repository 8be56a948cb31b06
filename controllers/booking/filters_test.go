package booking

import (
	"testing"

	"github.com/jinzhu/now"
	"github.com/stretchr/testify/assert"
)

func TestDateWindowStart(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		start, ok := dateWindowStart("today")
		assert.True(t, ok)
		assert.Equal(t, now.BeginningOfDay(), start)
	})

	t.Run("week", func(t *testing.T) {
		start, ok := dateWindowStart("week")
		assert.True(t, ok)
		assert.Equal(t, now.BeginningOfWeek(), start)
	})

	t.Run("month", func(t *testing.T) {
		start, ok := dateWindowStart("month")
		assert.True(t, ok)
		assert.Equal(t, now.BeginningOfMonth(), start)
	})

	t.Run("unknown values disable the filter", func(t *testing.T) {
		for _, raw := range []string{"", "ALL", "year", "yesterday"} {
			_, ok := dateWindowStart(raw)
			assert.False(t, ok, raw)
		}
	})
}
