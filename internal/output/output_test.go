package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type regionReport struct {
	Region   string `json:"region" yaml:"region"`
	Retained int    `json:"retained" yaml:"retained"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSONL", FormatJSONL, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewWriterSelectsImplementation(t *testing.T) {
	buf := &bytes.Buffer{}

	if w, err := NewWriter(buf, FormatJSON); err != nil {
		t.Fatal(err)
	} else if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("FormatJSON: got %T", w)
	}
	if w, err := NewWriter(buf, FormatJSONL); err != nil {
		t.Fatal(err)
	} else if _, ok := w.(*JSONLWriter); !ok {
		t.Errorf("FormatJSONL: got %T", w)
	}
	if w, err := NewWriter(buf, FormatYAML); err != nil {
		t.Fatal(err)
	} else if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("FormatYAML: got %T", w)
	}
	if _, err := NewWriter(buf, Format("csv")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriterSingleItemIsObject(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")

	if err := w.Write(regionReport{Region: "china-north", Retained: 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var got regionReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a bare object: %v\n%s", err, buf.String())
	}
	if got.Region != "china-north" || got.Retained != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestJSONWriterMultipleItemsIsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	err := w.WriteAll([]any{
		regionReport{Region: "china-north", Retained: 3},
		regionReport{Region: "china-east", Retained: 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []regionReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not an array: %v", err)
	}
	if len(got) != 2 || got[1].Region != "china-east" {
		t.Errorf("got %+v", got)
	}
}

func TestJSONWriterCompactIsSingleLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")

	if err := w.Write(regionReport{Region: "r", Retained: 1}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("compact output spans %d lines", len(lines))
	}
}

func TestJSONLWriterOneLinePerItem(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)

	for _, r := range []string{"china-north", "china-east", "china-north2"} {
		if err := w.Write(regionReport{Region: r, Retained: 1}); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		var item regionReport
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

func TestYAMLWriterRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(regionReport{Region: "china-north", Retained: 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	var got regionReport
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got.Region != "china-north" {
		t.Errorf("got %+v", got)
	}
}

func TestYAMLWriterMultipleItemsIsSequence(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.WriteAll([]any{
		regionReport{Region: "a", Retained: 1},
		regionReport{Region: "b", Retained: 2},
	}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []regionReport
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d items", len(got))
	}
}

func TestEmptyFlush(t *testing.T) {
	jsonBuf := &bytes.Buffer{}
	if err := NewJSONWriter(jsonBuf, false, "").Flush(); err != nil {
		t.Errorf("JSON empty flush: %v", err)
	}
	if got := strings.TrimSpace(jsonBuf.String()); got != "[]" {
		t.Errorf("JSON empty output = %q", got)
	}

	jsonlBuf := &bytes.Buffer{}
	if err := NewJSONLWriter(jsonlBuf).Flush(); err != nil {
		t.Errorf("JSONL empty flush: %v", err)
	}
	if jsonlBuf.Len() != 0 {
		t.Errorf("JSONL empty output = %q", jsonlBuf.String())
	}
}
