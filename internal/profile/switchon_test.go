package profile

import (
	"testing"

	"loadsim/internal/model"
	"loadsim/internal/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSwitchOn_NoSpotWideEnough(t *testing.T) {
	s := rng.NewStream(1)
	spots := []model.Window{{Start: 0, End: 5}}
	_, ok, err := SelectSwitchOn(s, spots, 10, 100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelectSwitchOn_ExactFit(t *testing.T) {
	s := rng.NewStream(1)
	spots := []model.Window{{Start: 10, End: 20}}
	interval, ok, err := SelectSwitchOn(s, spots, 10, 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.Window{Start: 10, End: 20}, interval)
}

func TestSelectSwitchOn_StaysWithinSpotAndRemaining(t *testing.T) {
	s := rng.NewStream(3)
	spots := []model.Window{{Start: 0, End: 100}, {Start: 200, End: 260}}
	for i := 0; i < 200; i++ {
		interval, ok, err := SelectSwitchOn(s, spots, 5, 30)
		require.NoError(t, err)
		require.True(t, ok)
		assert.GreaterOrEqual(t, interval.Len(), 5)
		assert.LessOrEqual(t, interval.Len(), 30)

		inSpot := false
		for _, spot := range spots {
			if interval.Start >= spot.Start && interval.End <= spot.End {
				inSpot = true
				break
			}
		}
		assert.True(t, inSpot, "interval %+v must fit entirely within one free spot", interval)
	}
}

func TestRemoveInterval_ExactMatchRemovesSpot(t *testing.T) {
	spots := []model.Window{{Start: 10, End: 20}}
	out := RemoveInterval(spots, model.Window{Start: 10, End: 20})
	assert.Empty(t, out)
}

func TestRemoveInterval_LeadingMatchKeepsRemainder(t *testing.T) {
	spots := []model.Window{{Start: 10, End: 30}}
	out := RemoveInterval(spots, model.Window{Start: 10, End: 20})
	require.Len(t, out, 1)
	assert.Equal(t, model.Window{Start: 20, End: 30}, out[0])
}

func TestRemoveInterval_TrailingMatchKeepsRemainder(t *testing.T) {
	spots := []model.Window{{Start: 10, End: 30}}
	out := RemoveInterval(spots, model.Window{Start: 20, End: 30})
	require.Len(t, out, 1)
	assert.Equal(t, model.Window{Start: 10, End: 20}, out[0])
}

func TestRemoveInterval_MiddleMatchSplitsInTwo(t *testing.T) {
	spots := []model.Window{{Start: 10, End: 30}}
	out := RemoveInterval(spots, model.Window{Start: 15, End: 20})
	require.Len(t, out, 2)
	assert.Equal(t, model.Window{Start: 10, End: 15}, out[0])
	assert.Equal(t, model.Window{Start: 20, End: 30}, out[1])
}

func TestRemoveInterval_DisjointUnionInvariant(t *testing.T) {
	// P4: free_spots stays disjoint and the union shrinks by exactly iv.
	spots := []model.Window{{Start: 0, End: 100}}
	iv := model.Window{Start: 40, End: 60}
	out := RemoveInterval(spots, iv)

	var total int
	for _, w := range out {
		total += w.Len()
	}
	assert.Equal(t, 100-iv.Len(), total)

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			assert.False(t, out[i].Overlaps(out[j]))
		}
	}
}
