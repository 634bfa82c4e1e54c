package cashflow

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Encoding string

const (
	// EncodingUTF8 is UTF-8 with a byte order mark so spreadsheet tools
	// detect the encoding.
	EncodingUTF8 Encoding = "utf-8"
	// EncodingCP932 is Windows "ANSI" for Japanese locales (Shift_JIS).
	// Characters it cannot represent are replaced.
	EncodingCP932 Encoding = "cp932"
)

func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, true
	case "cp932", "sjis", "shift_jis":
		return EncodingCP932, true
	}
	return "", false
}

func (e Encoding) encoder() *encoding.Encoder {
	if e == EncodingCP932 {
		return encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
	}
	return unicode.UTF8BOM.NewEncoder()
}

var exportHeader = []string{"occurred_on", "type", "category_code", "category_name", "amount",
	"description", "reference", "schedule_id"}

// WriteCSV writes entries as UTF-8 CSV with a byte order mark.
func WriteCSV(w io.Writer, entries []Entry) error {
	return WriteCSVEncoded(w, entries, EncodingUTF8)
}

func WriteCSVEncoded(w io.Writer, entries []Entry, enc Encoding) error {
	tw := transform.NewWriter(w, enc.encoder())
	cw := csv.NewWriter(tw)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.OccurredOn,
			string(e.Type),
			e.CategoryCode,
			e.CategoryName,
			strconv.FormatInt(e.Amount, 10),
			e.Description.String,
			e.Reference.String,
			e.ScheduleID.String,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return tw.Close()
}
