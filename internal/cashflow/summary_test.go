package cashflow

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t EntryType, cat uint, amount int64, on string) Entry {
	return Entry{Type: t, CategoryID: cat, CategoryCode: "C" + string(rune('0'+cat)), Amount: amount, OccurredOn: on}
}

func TestSummarize(t *testing.T) {
	entries := []Entry{
		entry(Income, 1, 50000, "2025-01-05"),
		entry(Expense, 2, 12000, "2025-01-10"),
		entry(Expense, 3, 3000, "2025-02-01"),
		entry(Income, 1, 20000, "2025-02-15"),
		entry(Expense, 2, 8000, "2025-02-20"),
		{Type: "refund", CategoryID: 9, Amount: 999, OccurredOn: "2025-02-21"},
	}
	got := Summarize("2025-01-01", "2025-02-28", entries)

	assert.Equal(t, int64(70000), got.Income)
	assert.Equal(t, int64(23000), got.Expense)
	assert.Equal(t, got.Income-got.Expense, got.Balance)
	assert.Equal(t, 5, got.Entries)

	require.Len(t, got.ByMonth, 2)
	assert.Equal(t, MonthTotal{Month: "2025-01", Income: 50000, Expense: 12000, Balance: 38000}, got.ByMonth[0])
	assert.Equal(t, MonthTotal{Month: "2025-02", Income: 20000, Expense: 11000, Balance: 9000}, got.ByMonth[1])

	require.Len(t, got.ByCategory, 3)
	assert.Equal(t, Income, got.ByCategory[0].Type)
	assert.Equal(t, int64(70000), got.ByCategory[0].Total)
	assert.Equal(t, 2, got.ByCategory[0].Count)
	assert.Equal(t, uint(2), got.ByCategory[1].CategoryID)
	assert.Equal(t, uint(3), got.ByCategory[2].CategoryID)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize("2025-01-01", "2025-01-31", nil)
	assert.Zero(t, got.Balance)
	assert.NotNil(t, got.ByCategory)
	assert.NotNil(t, got.ByMonth)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Entry{{
		Type: Income, CategoryCode: "FEE", CategoryName: "Fees, school", Amount: 1500, OccurredOn: "2025-03-01",
		Description: sql.NullString{String: "Año escolar", Valid: true},
	}})
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	rows, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"2025-03-01", "income", "FEE", "Fees, school", "1500", "Año escolar", "", ""}, rows[1])
}

func TestWriteCSVEmptyStillHasBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\xEF\xBB\xBFoccurred_on,")))
}

func TestWriteCSVShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSVEncoded(&buf, []Entry{{
		Type: Expense, CategoryCode: "BUS", CategoryName: "交通費", Amount: 800, OccurredOn: "2025-03-01",
		Description: sql.NullString{String: "bus 🚌", Valid: true},
	}}, EncodingCP932)
	require.NoError(t, err)

	out := buf.Bytes()
	assert.False(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	// 交通費 in Shift_JIS
	assert.True(t, bytes.Contains(out, []byte{0x8C, 0xF0, 0x92, 0xCA, 0x94, 0xEF}))
	assert.True(t, bytes.Contains(out, []byte("bus ")))
	assert.False(t, bytes.Contains(out, []byte("🚌")), "unsupported rune must be replaced")
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": EncodingUTF8, "UTF-8": EncodingUTF8, "sjis": EncodingCP932, "cp932": EncodingCP932} {
		got, ok := ParseEncoding(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseEncoding("latin1")
	assert.False(t, ok)
}
