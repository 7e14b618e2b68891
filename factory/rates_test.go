package factory_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/factory"
	"github.com/clasc/site/generic"
)

const sampleRates = `{
  "ipc": {
    "2024-01": "0.0092",
    "2024-02": 0.0123,
    "2024-03": "-0.0010"
  },
  "minimum_wage": {
    "2024": "1300000",
    "2023": 1160000
  }
}`

func TestParseRates(t *testing.T) {
	table, err := factory.NewRateTableFactory().ParseRates([]byte(sampleRates))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.Rate(generic.YearMonth{Year: 2024, Month: time.February}).Equal(decimal.RequireFromString("0.0123")))
	assert.True(t, table.Rate(generic.YearMonth{Year: 2024, Month: time.March}).IsNegative(), "deflation months are allowed")

	wage, ok := table.MinimumWage(2023)
	require.True(t, ok)
	assert.True(t, wage.Equal(decimal.NewFromInt(1160000)))
}

func TestParseRates_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"bad month key", `{"ipc": {"2024-13": "0.01"}}`, generic.ErrInvalidYearMonth},
		{"empty ipc", `{"ipc": {}}`, generic.ErrEmptyRateTable},
		{"bad wage year", `{"ipc": {"2024-01": "0.01"}, "minimum_wage": {"year": "1"}}`, generic.ErrInvalidAmount},
		{"non-positive wage", `{"ipc": {"2024-01": "0.01"}, "minimum_wage": {"2024": "0"}}`, generic.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := factory.NewRateTableFactory().ParseRates([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := factory.NewRateTableFactory().ParseRates([]byte(`{"ipc": {"2024-01": "abc"}}`))
	assert.Error(t, err, "unparsable decimal")

	_, err = factory.NewRateTableFactory().ParseRates([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseFileAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleRates), 0o600))

	f := factory.NewRateTableFactory()
	fromFile, err := f.ParseFile(path)
	require.NoError(t, err)
	fromReader, err := f.ParseReader(strings.NewReader(sampleRates))
	require.NoError(t, err)

	assert.Equal(t, fromFile.Rates(), fromReader.Rates())

	_, err = f.ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestToJSON_RoundTripsDefaultTable(t *testing.T) {
	f := factory.NewRateTableFactory()
	builtin := actuarial.DefaultIndexTable()

	data, err := json.Marshal(f.ToJSON(builtin))
	require.NoError(t, err)

	parsed, err := f.ParseRates(data)
	require.NoError(t, err)

	require.Equal(t, len(builtin.Rates()), len(parsed.Rates()))
	for i, r := range builtin.Rates() {
		assert.Equal(t, r.Month, parsed.Rates()[i].Month)
		assert.True(t, r.Rate.Equal(parsed.Rates()[i].Rate))
	}
	assert.Len(t, parsed.MinimumWages(), len(builtin.MinimumWages()))
}
