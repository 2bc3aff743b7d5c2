package diag

import (
	"testing"

	"asynclint/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimitAndMerge(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(EvtStaleReference, span(0, 0, 1), "one")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(NewError(EvtStaleReference, span(0, 1, 2), "two")) {
		t.Fatal("second add rejected")
	}
	if b.Add(NewError(EvtStaleReference, span(0, 2, 3), "three")) {
		t.Fatal("add past limit accepted")
	}

	other := NewBag(1)
	other.Add(New(SevWarning, EvtStaleProperty, span(0, 3, 4), "four"))
	b.Merge(other)
	if b.Len() != 3 {
		t.Fatalf("merge must grow capacity, len=%d", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, EvtStaleProperty, span(1, 5, 6), "b"))
	b.Add(New(SevError, ParSyntaxError, span(0, 9, 10), "c"))
	b.Add(New(SevWarning, EvtStaleReference, span(0, 2, 3), "a"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "a" || items[1].Message != "c" || items[2].Message != "b" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBagSeverityHelpers(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, EvtInfo, span(0, 0, 1), "i"))
	b.Add(New(SevWarning, EvtStaleReference, span(0, 1, 2), "w"))

	if b.HasErrors() {
		t.Error("no errors expected yet")
	}
	if !b.HasWarnings() {
		t.Error("warnings expected")
	}

	b.Promote(SevWarning, SevError)
	if !b.HasErrors() {
		t.Error("promotion to error failed")
	}

	b.DropBelow(SevError)
	if b.Len() != 1 {
		t.Errorf("DropBelow kept %d items, want 1", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	d := New(SevWarning, EvtStaleReference, span(0, 4, 9), "same")
	r.Report(d)
	r.Report(d)
	r.Report(New(SevWarning, EvtStaleReference, span(0, 4, 9), "different message"))

	if bag.Len() != 2 {
		t.Fatalf("dedup kept %d diagnostics, want 2", bag.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportWarning(BagReporter{Bag: bag}, EvtStaleMethod, span(0, 0, 4), "stale").
		WithNote(span(0, 10, 15), "suspended here").
		WithData("method", "preventDefault")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("builder emitted %d times", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || got.Data["method"] != "preventDefault" {
		t.Fatalf("builder payload lost: %+v", got)
	}
}
