package reports

import (
	"bytes"
	"io"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func sampleTable() Table {
	return equipmentTable("most-borrowed", []EquipmentCount{
		{EquipmentID: "E1", Name: "オシロスコープ", SerialNumber: "SN-1", Count: 7},
		{EquipmentID: "E2", Name: "Soldering, station", SerialNumber: "SN-2", Count: 3},
	})
}

func TestWriteCSV_UTF8WithBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable(), EncUTF8BOM); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := buf.Bytes()
	if !bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("missing BOM: % x", b[:3])
	}
	want := "equipment_id,name,serial_number,count\n" +
		"E1,オシロスコープ,SN-1,7\n" +
		"E2,\"Soldering, station\",SN-2,3\n"
	if got := string(b[3:]); got != want {
		t.Fatalf("csv mismatch:\n%s", got)
	}
}

func TestWriteCSV_ShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable(), EncShiftJIS); err != nil {
		t.Fatalf("write: %v", err)
	}
	if bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("sjis output must not carry a UTF-8 BOM")
	}
	decoded, err := io.ReadAll(transform.NewReader(&buf, japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Contains(decoded, []byte("E1,オシロスコープ,SN-1,7")) {
		t.Fatalf("unexpected content: %s", decoded)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleTable()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("most-borrowed")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "equipment_id" || rows[1][1] != "オシロスコープ" || rows[2][3] != "3" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func formulaTable() Table {
	return equipmentTable("most-borrowed", []EquipmentCount{
		{EquipmentID: "E1", Name: "=HYPERLINK(\"http://x\")", SerialNumber: "+81-1", Count: 2},
		{EquipmentID: "E2", Name: "@SUM(A1)", SerialNumber: "-SN", Count: 1},
	})
}

func TestWriteCSV_EscapesFormulaPrefixes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, formulaTable(), EncUTF8BOM); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "equipment_id,name,serial_number,count\n" +
		"E1,\"'=HYPERLINK(\"\"http://x\"\")\",'+81-1,2\n" +
		"E2,'@SUM(A1),'-SN,1\n"
	if got := string(buf.Bytes()[3:]); got != want {
		t.Fatalf("csv mismatch:\n%s", got)
	}
}

func TestWriteXLSX_StringsAreNotFormulas(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, formulaTable()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if formula, _ := f.GetCellFormula("most-borrowed", "B2"); formula != "" {
		t.Fatalf("B2 became a formula: %q", formula)
	}
	if v, _ := f.GetCellValue("most-borrowed", "B3"); v != "@SUM(A1)" {
		t.Fatalf("B3=%q", v)
	}
}

func TestParseFormatAndEncoding(t *testing.T) {
	if f, ok := ParseFormat(""); !ok || f != FormatJSON {
		t.Fatalf("default format: %q", f)
	}
	if f, ok := ParseFormat("XLSX"); !ok || f != FormatXLSX {
		t.Fatalf("xlsx: %q", f)
	}
	if _, ok := ParseFormat("pdf"); ok {
		t.Fatalf("pdf should be rejected")
	}
	if e, ok := ParseEncoding("cp932"); !ok || e != EncShiftJIS {
		t.Fatalf("cp932: %q", e)
	}
}
