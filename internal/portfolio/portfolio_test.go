package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/pretrade/internal/cache"
	"github.com/tradegate/pretrade/internal/model"
)

var ethusdt = model.InstrumentID{Symbol: "ETHUSDT", Venue: "BYBIT"}

func addPosition(t *testing.T, c *cache.Cache, id string, side model.PositionSide, qty string) {
	t.Helper()
	q, err := model.QuantityFromString(qty)
	require.NoError(t, err)
	c.AddPosition(&model.Position{
		ID:           model.PositionID(id),
		InstrumentID: ethusdt,
		Side:         side,
		Quantity:     q,
	})
}

func TestNetExposure_FlatWithoutPositions(t *testing.T) {
	p := New(cache.New())

	assert.True(t, p.NetExposure(ethusdt).IsZero())
	assert.False(t, p.IsNetLong(ethusdt))
	assert.False(t, p.IsNetShort(ethusdt))
}

func TestNetExposure_NetsLongsAgainstShorts(t *testing.T) {
	c := cache.New()
	addPosition(t, c, "P-1", model.PositionSideLong, "2.500")
	addPosition(t, c, "P-2", model.PositionSideLong, "1.000")
	addPosition(t, c, "P-3", model.PositionSideShort, "0.750")
	p := New(c)

	assert.True(t, p.NetExposure(ethusdt).Equal(decimal.RequireFromString("2.75")))
	assert.True(t, p.IsNetLong(ethusdt))
	assert.False(t, p.IsNetShort(ethusdt))
}

func TestNetExposure_NetShort(t *testing.T) {
	c := cache.New()
	addPosition(t, c, "P-1", model.PositionSideLong, "1.000")
	addPosition(t, c, "P-2", model.PositionSideShort, "3.000")
	p := New(c)

	assert.True(t, p.NetExposure(ethusdt).Equal(decimal.RequireFromString("-2")))
	assert.False(t, p.IsNetLong(ethusdt))
	assert.True(t, p.IsNetShort(ethusdt))
}

func TestNetExposure_EqualLongAndShortIsFlat(t *testing.T) {
	c := cache.New()
	addPosition(t, c, "P-1", model.PositionSideLong, "1.500")
	addPosition(t, c, "P-2", model.PositionSideShort, "1.500")
	p := New(c)

	assert.True(t, p.NetExposure(ethusdt).IsZero())
	assert.False(t, p.IsNetLong(ethusdt))
	assert.False(t, p.IsNetShort(ethusdt))
}

func TestNetExposure_IgnoresFlatPositions(t *testing.T) {
	c := cache.New()
	addPosition(t, c, "P-1", model.PositionSideLong, "2.000")
	addPosition(t, c, "P-2", model.PositionSideFlat, "9.000")
	p := New(c)

	assert.True(t, p.NetExposure(ethusdt).Equal(decimal.RequireFromString("2")))
}

func TestNetExposure_ScopedToInstrument(t *testing.T) {
	c := cache.New()
	addPosition(t, c, "P-1", model.PositionSideLong, "2.000")
	other := model.InstrumentID{Symbol: "BTCUSDT", Venue: "BYBIT"}
	p := New(c)

	assert.True(t, p.NetExposure(other).IsZero())
}
