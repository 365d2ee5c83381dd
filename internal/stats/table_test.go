package stats

import (
	"bytes"
	"testing"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(
		column{title: "#", align: alignRight},
		column{title: "Value", align: alignRight},
		column{title: "Share", align: alignRight},
	)
	tbl.add("1", "500", "50.00%")
	tbl.add("12", "7.5", "0.75%")

	lines := tbl.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != " # Value  Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 1   500 50.00%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "12   7.5  0.75%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTableTrimsLastLeftColumn(t *testing.T) {
	tbl := newTable(column{title: "Name"}, column{title: "Color"})
	tbl.add("a", "#ff0000")
	tbl.add("longer")

	lines := tbl.lines()
	if lines[1] != "a      #ff0000" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "longer " {
		t.Fatalf("expected blank trailing cell, got %q", lines[2])
	}
}

func TestTableTruncatesWideCells(t *testing.T) {
	tbl := newTable(column{title: "Name", maxWidth: 6}, column{title: "N", align: alignRight})
	tbl.add("quarterly-report", "3")

	var buf bytes.Buffer
	if err := tbl.write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "Name   N\nqua... 3\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestTableMeasuresWideRunes(t *testing.T) {
	tbl := newTable(column{title: "Name"}, column{title: "N", align: alignRight})
	tbl.add("日本", "1")
	tbl.add("ab", "2")

	lines := tbl.lines()
	if lines[2] != "ab   2" {
		t.Fatalf("expected padding by display width, got %q", lines[2])
	}
}
