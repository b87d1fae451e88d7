package limit

import (
	"context"
	"errors"
	"overseer/core"
	"overseer/internal/fake"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codec = core.AddressCodec{Prefix: "terra"}

type fixture struct {
	oracle     *fake.Oracle
	whitelists *fake.Whitelist
	protocols  *fake.Protocol
	service    core.BorrowLimitService
}

func newFixture() *fixture {
	f := &fixture{
		oracle:     fake.NewOracle(),
		whitelists: fake.NewWhitelist(),
		protocols: &fake.Protocol{Config: &core.ProtocolConfig{
			MarketContract: fake.Address(0xaa),
			OracleContract: fake.Address(0xbb),
			BaseDenom:      "uusd",
		}},
	}
	f.service = New(codec, f.protocols, f.whitelists, f.oracle)
	return f
}

func (f *fixture) collateral(asset core.Address, ltv, price string) {
	f.whitelists.Set(asset, ltv)
	f.oracle.Set("uusd", codec.MustHuman(asset), price, 1600000000)
}

func TestComputeBorrowLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	x, y := fake.Address(1), fake.Address(2)
	f.collateral(x, "0.5", "10")
	f.collateral(y, "0.6", "2.5")
	f.oracle.Set("uusd", codec.MustHuman(y), "2.5", 1500000000)

	basket := core.Collaterals{
		core.NewCollateral(x, 100),
		core.NewCollateral(y, 3),
	}

	limit, err := f.service.ComputeBorrowLimit(ctx, basket)
	require.NoError(t, err)
	// 100*0.5*10 + floor(floor(3*0.6)*2.5) = 500 + 2
	assert.Equal(t, "502", limit.Limit.Dec())
	require.Len(t, limit.Valuations, 2)
	assert.Equal(t, x, limit.Valuations[0].Asset)
	assert.Equal(t, "500", limit.Valuations[0].Value.Dec())
	assert.Equal(t, "2", limit.Valuations[1].Value.Dec())
	assert.Equal(t, int64(1500000000), limit.OldestUpdate())

	again, err := f.service.ComputeBorrowLimit(ctx, basket)
	require.NoError(t, err)
	assert.Equal(t, limit, again, "same basket and prices give the same result")
}

func TestComputeBorrowLimitNeverUpdatedPrice(t *testing.T) {
	f := newFixture()

	x, y := fake.Address(1), fake.Address(2)
	f.whitelists.Set(x, "0.5")
	f.whitelists.Set(y, "0.5")
	f.oracle.Set("uusd", codec.MustHuman(x), "1", 0)
	f.oracle.Set("uusd", codec.MustHuman(y), "1", 100)

	limit, err := f.service.ComputeBorrowLimit(context.Background(), core.Collaterals{
		core.NewCollateral(x, 10),
		core.NewCollateral(y, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), limit.OldestUpdate(), "a zero timestamp is the stalest")
}

func TestComputeBorrowLimitEmpty(t *testing.T) {
	f := newFixture()

	limit, err := f.service.ComputeBorrowLimit(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, limit.Limit.IsZero())
	assert.Zero(t, limit.OldestUpdate())
	assert.Zero(t, f.oracle.Calls)
}

func TestComputeBorrowLimitErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown collateral", func(t *testing.T) {
		f := newFixture()
		f.oracle.Set("uusd", codec.MustHuman(fake.Address(1)), "1", 0)

		_, err := f.service.ComputeBorrowLimit(ctx, core.Collaterals{core.NewCollateral(fake.Address(1), 1)})
		assert.True(t, errors.Is(err, core.ErrUnknownCollateral))
	})

	t.Run("price unavailable", func(t *testing.T) {
		f := newFixture()
		f.whitelists.Set(fake.Address(1), "0.5")

		_, err := f.service.ComputeBorrowLimit(ctx, core.Collaterals{core.NewCollateral(fake.Address(1), 1)})
		assert.True(t, errors.Is(err, core.ErrPriceUnavailable))
	})

	t.Run("config missing", func(t *testing.T) {
		f := newFixture()
		f.protocols.Config = nil

		_, err := f.service.ComputeBorrowLimit(ctx, nil)
		assert.True(t, errors.Is(err, core.ErrConfigNotFound))
	})

	t.Run("overflow", func(t *testing.T) {
		f := newFixture()
		f.collateral(fake.Address(1), "1", "1")
		f.collateral(fake.Address(2), "1", "1")

		max := new(uint256.Int).SetAllOne()
		basket := core.Collaterals{
			{Asset: fake.Address(1), Amount: *max},
			core.NewCollateral(fake.Address(2), 1),
		}

		_, err := f.service.ComputeBorrowLimit(ctx, basket)
		assert.True(t, errors.Is(err, core.ErrOverflow))
	})
}
