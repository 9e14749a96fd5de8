package logparse

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineLine(collateral, price float64) string {
	return fmt.Sprintf("INFO - MarketDataPoint { total_collateral: %v, total_user_balances: 0, "+
		"total_fee_balance: 12, rebalancing_funds: 0, rebalanced_v_coin: -3, v_coin_amount: 1000000000, "+
		"v_pc_amount: 1000000000000, open_shorts_v_coin: 0, open_longs_v_coin: 5, "+
		"funding_history: [0, 0, 0, 0], funding_balancing_factors: [4294967296, 4294967296], "+
		"number_of_instances: 1, insurance_fund: 0, market_price: %v, oracle_price: %v, "+
		"equilibrium_price: 1000.0, gc_list_lengths: [0], page_full_ratios: [[0.25, 0.5, 0.0]], "+
		"longs_depths: [3], shorts_depths: [2] }\n", collateral, price, price)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		tag  Tag
		ok   bool
	}{
		{line: "INFO - MarketDataPoint { a: 1 }", tag: TagMarketDataPoint, ok: true},
		{line: "DEBUG - Program log: Instruction: Open", tag: TagProgramDebug, ok: true},
		{line: "DEBUG - tx error: custom program error: 0x1", tag: TagTxError, ok: true},
		{line: "INFO - Tree: LONGS TREE", tag: TagTreeDump, ok: true},
		{line: "INFO - Initial Conditions: GlobalVars { }", tag: TagInitialConditions, ok: true},
		{line: "INFO - Seed for this run: 42", tag: TagSeed, ok: true},
		{line: "INFO - something else", ok: false},
		{line: "", ok: false},
	}
	for _, tc := range cases {
		tag, ok := Classify(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.tag, tag, tc.line)
	}
}

func TestParsePayloadEngineLine(t *testing.T) {
	dp, err := ParsePayload(engineLine(10, 100))
	require.NoError(t, err)

	keys := dp.Keys()
	require.NotEmpty(t, keys)
	assert.Equal(t, "total_collateral", keys[0])
	assert.Equal(t, "shorts_depths", keys[len(keys)-1])

	v, ok := dp.Scalar("total_collateral")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
	v, ok = dp.Scalar("rebalanced_v_coin")
	require.True(t, ok)
	assert.Equal(t, -3.0, v)

	_, ok = dp.Scalar("funding_history")
	assert.False(t, ok, "sequences are not scalars")
	assert.True(t, dp.Has("funding_history"))
	assert.False(t, dp.Has("missing"))

	assert.Equal(t, []float64{0}, dp.Layout.GCListLengths)
	assert.Equal(t, [][]float64{{0.25, 0.5, 0}}, dp.Layout.PageFullRatios)
	assert.Equal(t, []float64{3}, dp.Layout.LongsDepths)
	assert.Equal(t, []float64{2}, dp.Layout.ShortsDepths)
}

func TestParsePayloadIsIdempotent(t *testing.T) {
	line := engineLine(20, 150)
	first, err := ParsePayload(line)
	require.NoError(t, err)
	second, err := ParsePayload(line)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Layout, second.Layout)

	other, err := ParsePayload(engineLine(21, 150))
	require.NoError(t, err)
	assert.False(t, first.Equal(other))
}

func TestParsePayloadStripsStructNames(t *testing.T) {
	line := "INFO - MarketDataPoint { a: 1, inst: Instance { version: 1 }, pages: [PageInfo { free: 2 }] }"
	payload, ok := Payload(line)
	require.True(t, ok)
	assert.NotContains(t, payload, "Instance")
	assert.NotContains(t, payload, "PageInfo")

	dp, err := ParsePayload(line)
	require.NoError(t, err)
	inst, ok := dp.Value("inst")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"version": 1.0}, inst)
	pages, _ := dp.Value("pages")
	assert.Equal(t, []any{map[string]any{"free": 2.0}}, pages)
}

func TestParsePayloadNonFiniteNumbers(t *testing.T) {
	dp, err := ParsePayload("INFO - MarketDataPoint { market_price: NaN, oracle_price: inf, equilibrium_price: -inf }")
	require.NoError(t, err)
	mp, _ := dp.Scalar("market_price")
	op, _ := dp.Scalar("oracle_price")
	ep, _ := dp.Scalar("equilibrium_price")
	assert.True(t, math.IsNaN(mp))
	assert.True(t, math.IsInf(op, 1))
	assert.True(t, math.IsInf(ep, -1))
}

func TestParsePayloadErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":     "INFO - MarketDataPoint { total_collateral: [1, 2 }",
		"not a mapping": "INFO - MarketDataPoint [1, 2, 3]",
		"empty":         "INFO - MarketDataPoint",
		"schema type":   "INFO - MarketDataPoint { market_price: [1, 2] }",
		"bad layout":    "INFO - MarketDataPoint { page_full_ratios: [1, 2] }",
		"duplicate key": "INFO - MarketDataPoint { a: 1, a: 2 }",
		"no tag":        "INFO - Tree: LONGS TREE",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePayload(line)
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.NotNil(t, pe.Unwrap())
		})
	}
}
