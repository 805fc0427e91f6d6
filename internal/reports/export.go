package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatCSV, FormatXLSX:
		return f, true
	}
	return "", false
}

// Encoding は CSV の文字コード
type Encoding string

const (
	EncUTF8BOM  Encoding = "utf8"
	EncShiftJIS Encoding = "sjis" // Excel (日本語版) でそのまま開ける CP932
)

func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf8", "utf-8":
		return EncUTF8BOM, true
	case "sjis", "shift_jis", "cp932":
		return EncShiftJIS, true
	}
	return "", false
}

func (e Encoding) encoder() *encoding.Encoder {
	if e == EncShiftJIS {
		// CP932 にない文字は '?' に置き換える
		return encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
	}
	return unicode.UTF8BOM.NewEncoder()
}

func cellString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// csvCell は表計算ソフトが数式として解釈する先頭文字を ' でエスケープする。
// 数値セルはそのまま
func csvCell(v any) string {
	str, ok := v.(string)
	if !ok {
		return cellString(v)
	}
	if str != "" && strings.ContainsRune("=+-@\t\r", rune(str[0])) {
		return "'" + str
	}
	return str
}

// WriteCSV はヘッダ付きで t を書き出す
func WriteCSV(w io.Writer, t Table, enc Encoding) error {
	tw := transform.NewWriter(w, enc.encoder())
	cw := csv.NewWriter(tw)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	rec := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i := range rec {
			rec[i] = ""
			if i < len(row) {
				rec[i] = csvCell(row[i])
			}
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

// WriteXLSX は 1 シートのブックを書き出す。数値は数値セルのまま。
// 文字列は文字列セルとして書くので = で始まっても数式にはならない
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Name
	if sheet == "" {
		sheet = "report"
	}
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil && len(t.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}
	return f.Write(w)
}
