package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerd/recordcache/module/clock"
)

func TestConsensus(t *testing.T) {
	start := time.Unix(1000, 0).UTC()
	c := clock.NewConsensus(start)
	assert.Equal(t, start, c.CurrentConsensusTime())

	now := c.Advance(200 * time.Second)
	assert.Equal(t, time.Unix(1200, 0).UTC(), now)
	assert.Equal(t, now, c.CurrentConsensusTime())

	t.Run("does not move backwards", func(t *testing.T) {
		assert.False(t, c.Set(start))
		assert.Equal(t, now, c.CurrentConsensusTime())
	})

	t.Run("moves forward", func(t *testing.T) {
		assert.True(t, c.Set(time.Unix(1300, 5)))
		assert.Equal(t, time.Unix(1300, 5).UTC(), c.CurrentConsensusTime())
	})
}
