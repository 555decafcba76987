package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_MergesOverlapAndAdjacency(t *testing.T) {
	in := []Range{
		{Start: 100, End: 200},
		{Start: 50, End: 100}, // adjacent to the one above
		{Start: 300, End: 310},
		{Start: 305, End: 400}, // overlaps the one above
	}
	out := Normalize(in)
	assert.Equal(t, []Range{{Start: 50, End: 200}, {Start: 300, End: 400}}, out)
}

func TestNormalize_DropsEmptyRanges(t *testing.T) {
	out := Normalize([]Range{{Start: 10, End: 10}, {Start: 20, End: 5}, {Start: 30, End: 40}})
	assert.Equal(t, []Range{{Start: 30, End: 40}}, out)
}

func TestSubtract_PunchesHoleInMiddle(t *testing.T) {
	a := []Range{{Start: 0, End: 100}}
	b := []Range{{Start: 40, End: 60}}
	out := Subtract(a, b)
	assert.Equal(t, []Range{{Start: 0, End: 40}, {Start: 60, End: 100}}, out)
}

func TestSubtract_HoleCoversEntireBase(t *testing.T) {
	a := []Range{{Start: 10, End: 20}}
	b := []Range{{Start: 0, End: 100}}
	assert.Empty(t, Subtract(a, b))
}

func TestSubtract_NoHoles(t *testing.T) {
	a := []Range{{Start: 0, End: 50}}
	assert.Equal(t, a, Subtract(a, nil))
}

func TestIntersect_OverlappingRanges(t *testing.T) {
	a := []Range{{Start: 0, End: 50}, {Start: 100, End: 150}}
	b := []Range{{Start: 30, End: 120}}
	out := Intersect(a, b)
	assert.Equal(t, []Range{{Start: 30, End: 50}, {Start: 100, End: 120}}, out)
}

func TestClip_TrimsToBounds(t *testing.T) {
	in := []Range{{Start: -10, End: 30}, {Start: 90, End: 200}}
	out := Clip(in, 0, 100)
	assert.Equal(t, []Range{{Start: 0, End: 30}, {Start: 90, End: 100}}, out)
}

func TestRange_ContainsAndLen(t *testing.T) {
	r := Range{Start: 10, End: 20}
	assert.True(t, r.Contains(10))
	assert.False(t, r.Contains(20))
	assert.Equal(t, 10, r.Len())
	assert.True(t, Range{Start: 5, End: 5}.Empty())
}
