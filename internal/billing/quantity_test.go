package billing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: "", want: 0},
		{raw: "   ", want: 0},
		{raw: "300", want: 300},
		{raw: " 2.5 ", want: 2.5},
		{raw: "0.125", want: 0.125},
		{raw: "-40", want: -40},
		{raw: "1e3", want: 1000},
		{raw: "12kg", want: 0},
		{raw: "NaN", want: 0},
		{raw: "+Inf", want: 0},
		{raw: "1,000", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.InDelta(t, tt.want, CoerceNumber(tt.raw), 1e-12)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	assert.False(t, ParseQuantity("").Valid)
	assert.False(t, ParseQuantity("x").Valid)

	q := ParseQuantity("2.75")
	assert.True(t, q.Valid)
	assert.InDelta(t, 2.75, q.Float(), 1e-12)
	assert.Equal(t, "2.75", q.String())

	assert.Equal(t, "", Quantity{}.String())
	assert.Zero(t, Quantity{}.Float())
}

func TestOf_RejectsNonFinite(t *testing.T) {
	assert.True(t, Of(0).Valid)
	assert.False(t, Of(math.Inf(1)).Valid)
	assert.False(t, Of(math.NaN()).Valid)
}

func TestQuantity_JSON(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantValid bool
		wantValue float64
	}{
		{name: "number", json: `12.5`, wantValid: true, wantValue: 12.5},
		{name: "numeric string", json: `"300"`, wantValid: true, wantValue: 300},
		{name: "empty string", json: `""`, wantValid: false},
		{name: "null", json: `null`, wantValid: false},
		{name: "garbage string", json: `"abc"`, wantValid: false},
		{name: "boolean", json: `true`, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.json), &q))
			assert.Equal(t, tt.wantValid, q.Valid)
			assert.InDelta(t, tt.wantValue, q.Float(), 1e-12)
		})
	}
}

func TestReceiptInput_JSONShape(t *testing.T) {
	in := ReceiptInput{
		Date:   "2024-05-02",
		Weight: Of(2.5),
		PreviousBills: []PreviousBill{
			{ID: 7, Date: "2024-04-30", Amount: Of(1000)},
			{ID: 8, Date: "", Amount: Quantity{}},
		},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"date": "2024-05-02",
		"weight": 2.5,
		"rate": null,
		"previousBills": [
			{"id": 7, "date": "2024-04-30", "amount": 1000},
			{"id": 8, "date": "", "amount": null}
		]
	}`, string(data))

	var decoded ReceiptInput
	require.NoError(t, json.Unmarshal([]byte(`{"date":"","weight":"","rate":300,"previousBills":[{"amount":"1000"}]}`), &decoded))
	got := ComputeTotals(decoded)
	assert.Zero(t, got.ItemTotal)
	assert.InDelta(t, 1000, got.FinalTotal, 1e-9)
}
