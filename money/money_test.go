package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FX93Y2/ConsultFirmDBMockup/money"
)

func TestRoundHours_RoundsToOneDecimal(t *testing.T) {
	a := money.Hours(6.27)
	assert.Equal(t, "6.3", a.RoundHours().Value.String())
}

func TestRoundToNearest1000(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{124499, "124000"},
		{124500, "125000"},
		{999, "1000"},
	}
	for _, c := range cases {
		got := money.Currency(c.in).RoundToNearest1000()
		assert.Equal(t, c.want, got.Value.String())
	}
}

func TestAdd_PreservesUnit(t *testing.T) {
	a := money.Hours(3)
	b := money.Hours(4)
	sum := a.Add(b)
	assert.Equal(t, money.UnitHours, sum.Unit)
	assert.True(t, sum.Value.Equal(money.Hours(7).Value))
}

func TestMinMax(t *testing.T) {
	a := money.Currency(10)
	b := money.Currency(20)
	assert.True(t, a.Min(b).Value.Equal(a.Value))
	assert.True(t, a.Max(b).Value.Equal(b.Value))
}

func TestComparisons(t *testing.T) {
	a := money.Currency(10)
	b := money.Currency(20)
	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.LessThanOrEqual(a))
	assert.True(t, a.GreaterThanOrEqual(a))
}
