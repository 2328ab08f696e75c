package simrand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
)

func TestSource_SameSeedSameSequence(t *testing.T) {
	a := simrand.New(7)
	b := simrand.New(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uniform(0, 100), b.Uniform(0, 100))
	}
}

func TestUniform_Bounds(t *testing.T) {
	s := simrand.New(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(2, 5)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 5.0)
	}
}

func TestUniform_DegenerateRangeReturnsLowerBound(t *testing.T) {
	s := simrand.New(1)
	assert.Equal(t, 3.0, s.Uniform(3, 3))
	assert.Equal(t, 3.0, s.Uniform(3, 1))
}

func TestIntInRange_Inclusive(t *testing.T) {
	s := simrand.New(2)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := s.IntInRange(1, 3)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3, "expected all three values of [1,3] to appear over 500 draws")
}

func TestWeightedChoice_AlwaysPicksSoleNonZeroWeight(t *testing.T) {
	s := simrand.New(3)
	values := []string{"a", "b", "c"}
	weights := []float64{0, 1, 0}
	for i := 0; i < 50; i++ {
		assert.Equal(t, "b", simrand.WeightedChoice(s, values, weights))
	}
}

func TestWeightedChoice_EmptyValuesReturnsZeroValue(t *testing.T) {
	s := simrand.New(4)
	var values []int
	assert.Equal(t, 0, simrand.WeightedChoice(s, values, nil))
}

func TestSampleWithoutReplacement_NoDuplicatesAndCorrectSize(t *testing.T) {
	s := simrand.New(5)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := simrand.SampleWithoutReplacement(s, items, 3)
	assert.Len(t, out, 3)
	seen := map[int]bool{}
	for _, v := range out {
		assert.False(t, seen[v], "duplicate value %d in sample", v)
		seen[v] = true
	}
}

func TestSampleWithoutReplacement_KGreaterThanLenReturnsAll(t *testing.T) {
	s := simrand.New(6)
	items := []int{1, 2, 3}
	out := simrand.SampleWithoutReplacement(s, items, 10)
	assert.ElementsMatch(t, items, out)
}

func TestShuffle_IsAPermutation(t *testing.T) {
	s := simrand.New(8)
	items := []int{1, 2, 3, 4, 5}
	simrand.Shuffle(s, items)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, items)
}
