package normalize

import (
	"testing"
	"time"

	"github.com/rakapradana/supplychain-opt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderDate_DayFirst(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "slash day first", raw: "3/1/2017", want: time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC)},
		{name: "two digit fields", raw: "31/12/2016", want: time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "dash separated", raw: "5-2-2018", want: time.Date(2018, 2, 5, 0, 0, 0, 0, time.UTC)},
		{name: "with time", raw: "15/6/2017 10:30", want: time.Date(2017, 6, 15, 10, 30, 0, 0, time.UTC)},
		{name: "iso fallback", raw: "2017-06-15", want: time.Date(2017, 6, 15, 0, 0, 0, 0, time.UTC)},
		{name: "surrounding whitespace", raw: "  3/1/2017 ", want: time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOrderDate(tt.raw)
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseOrderDate_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a date", "40/40/2017", "2017-13-40", "0000-00-00 00:00:00"} {
		assert.Nil(t, ParseOrderDate(raw), "expected nil for %q", raw)
	}
}

func TestRecords_KeepsMalformedDates(t *testing.T) {
	rows := []domain.RawSalesRow{
		{OrderDate: "3/1/2017", ProductName: " Widget ", Quantity: 5, Sales: 25.50},
		{OrderDate: "garbage", ProductName: "Widget", Quantity: 2, Sales: 10},
	}

	records := Records(rows)
	require.Len(t, records, 2)

	assert.NotNil(t, records[0].OrderDate)
	assert.Equal(t, "Widget", records[0].ProductName)
	assert.Equal(t, 5.0, records[0].Quantity)

	// Malformed date is marked, not dropped
	assert.Nil(t, records[1].OrderDate)
	assert.Equal(t, 2.0, records[1].Quantity)
	assert.Equal(t, 10.0, records[1].Sales)
}

func TestRecords_Empty(t *testing.T) {
	assert.Empty(t, Records(nil))
}
