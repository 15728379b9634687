package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"9:30", 570, false},
		{"14:00", 840, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	// Adjacent windows share a boundary but do not overlap.
	assert.False(t, Overlaps(540, 600, 600, 660))
	assert.False(t, Overlaps(600, 660, 540, 600))

	assert.True(t, Overlaps(540, 601, 600, 660))
	assert.True(t, Overlaps(500, 700, 540, 600)) // containment
	assert.True(t, Overlaps(560, 580, 540, 600))
	assert.False(t, Overlaps(0, 60, 120, 180))
}

func TestWidenByBufferClamps(t *testing.T) {
	start, end := WidenByBuffer(600, 660, 30)
	assert.Equal(t, 570, start)
	assert.Equal(t, 690, end)

	start, end = WidenByBuffer(10, 1435, 30)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1440, end)
}

func TestSplitIntoSubBlocks(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	start := time.Date(2030, 6, 1, 14, 0, 0, 0, loc)
	end := start.Add(80 * time.Minute)

	var blocks []SubBlock
	SplitIntoSubBlocks(start, end, 30*time.Minute)(func(sub SubBlock) bool {
		blocks = append(blocks, sub)
		return true
	})

	require.Len(t, blocks, 3)
	assert.Equal(t, start, blocks[0].Start)
	assert.Equal(t, 30*time.Minute, blocks[0].End.Sub(blocks[0].Start))
	assert.Equal(t, 30*time.Minute, blocks[1].End.Sub(blocks[1].Start))
	// Final granule is trimmed to the booked end.
	assert.Equal(t, 20*time.Minute, blocks[2].End.Sub(blocks[2].Start))
	assert.Equal(t, end, blocks[2].End)

	// Granules tile the window with no gaps.
	assert.Equal(t, blocks[0].End, blocks[1].Start)
	assert.Equal(t, blocks[1].End, blocks[2].Start)
}

func TestSplitIntoSubBlocksEmptyWindow(t *testing.T) {
	now := time.Now()
	count := 0
	SplitIntoSubBlocks(now, now, 30*time.Minute)(func(sub SubBlock) bool {
		count++
		return true
	})
	assert.Zero(t, count)
}

func TestResolveTourTimezone(t *testing.T) {
	loc := ResolveTourTimezone("America/Toronto", "")
	assert.Equal(t, "America/Toronto", loc.String())

	loc = ResolveTourTimezone("Not/AZone", "Europe/London")
	assert.Equal(t, "Europe/London", loc.String())

	loc = ResolveTourTimezone("", "")
	assert.Equal(t, time.UTC, loc)
}
