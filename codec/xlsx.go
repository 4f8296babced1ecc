package codec

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/flowmatic/idata"
)

func init() {
	Register(Excel{})
}

// Excel encodes the same record-list shape as CSV into a worksheet: header
// row from the union of record keys, one row per record. Decoding reads the
// first sheet back into string-valued records.
type Excel struct {
	// RecordKey is the key holding the record array; defaults to "records".
	RecordKey string
	// Sheet is the worksheet name; defaults to "Sheet1".
	Sheet string
}

func (Excel) Name() string { return "xlsx" }

func (x Excel) recordKey() string {
	if x.RecordKey != "" {
		return x.RecordKey
	}
	return "records"
}

func (x Excel) sheet() string {
	if x.Sheet != "" {
		return x.Sheet
	}
	return "Sheet1"
}

func (x Excel) Encode(w io.Writer, d idata.Document) error {
	records, err := recordsOf(d, x.recordKey())
	if err != nil {
		return err
	}
	headers := recordHeaders(records)

	f := excelize.NewFile()
	defer f.Close()
	sheet := x.sheet()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return errf("xlsx: %w", err)
		}
	}
	for col, h := range headers {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	for row, rec := range records {
		for col, h := range headers {
			v, ok := idata.Get(rec, h)
			if !ok || v == nil {
				continue
			}
			if err := setCell(f, sheet, col+1, row+2, v); err != nil {
				return err
			}
		}
	}
	if err := f.Write(w); err != nil {
		return errf("xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errf("xlsx: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return errf("xlsx: %w", err)
	}
	return nil
}

func (x Excel) Decode(r io.Reader) (idata.Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errf("xlsx: %w", err)
	}
	defer f.Close()
	sheet := x.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, errf("xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errf("xlsx: %w", err)
	}
	out := idata.NewElementList()
	if len(rows) == 0 {
		out.Add(x.recordKey(), []idata.Document{})
		return out, nil
	}
	headers := rows[0]
	records := make([]idata.Document, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := idata.NewElementList()
		for i, h := range headers {
			if i < len(row) {
				rec.Add(h, row[i])
			}
		}
		records = append(records, rec)
	}
	out.Add(x.recordKey(), records)
	return out, nil
}
