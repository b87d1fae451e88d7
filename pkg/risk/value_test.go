package risk

import (
	"errors"
	"overseer/core"
	"overseer/pkg/number"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollateralValue(t *testing.T) {
	cases := []struct {
		name   string
		amount uint64
		ltv    string
		price  string
		expect string
	}{
		{"basic", 100, "0.5", "10", "500"},
		{"zero amount", 0, "0.5", "10", "0"},
		{"zero ltv", 100, "0", "10", "0"},
		{"full ltv", 7, "1", "3", "21"},
		// floor(3 * 0.5) = 1, 1 * 3 = 3; amount*price*ltv would give 4
		{"ltv truncated before price", 3, "0.5", "3", "3"},
		// floor(10 * 0.33) = 3, floor(3 * 0.5) = 1
		{"price truncated", 10, "0.33", "0.5", "1"},
		{"fractional price", 1000000, "0.75", "1.234567", "925925"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := CollateralValue(uint256.NewInt(c.amount), number.Decimal(c.ltv), number.Decimal(c.price))
			require.NoError(t, err)
			assert.Equal(t, c.expect, v.Dec())
		})
	}
}

func TestCollateralValueRejects(t *testing.T) {
	_, err := CollateralValue(uint256.NewInt(1), number.Decimal("1.01"), number.Decimal("1"))
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = CollateralValue(uint256.NewInt(1), number.Decimal("-0.1"), number.Decimal("1"))
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	_, err = CollateralValue(uint256.NewInt(1), number.Decimal("0.5"), number.Decimal("-1"))
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))

	max := new(uint256.Int).SetAllOne()
	_, err = CollateralValue(max, number.Decimal("1"), number.Decimal("2"))
	assert.True(t, errors.Is(err, core.ErrOverflow))
}

func TestAccumulate(t *testing.T) {
	limit := uint256.NewInt(1)
	require.NoError(t, Accumulate(limit, uint256.NewInt(2)))
	assert.Equal(t, "3", limit.Dec())

	max := new(uint256.Int).SetAllOne()
	err := Accumulate(max, uint256.NewInt(1))
	assert.True(t, errors.Is(err, core.ErrOverflow))
}
