package diag_test

import (
	"testing"

	"cinder/internal/diag"
	"cinder/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 3; i++ {
		ok := bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.UnknownCode})
		if i < 2 && !ok {
			t.Errorf("Add #%d rejected below the limit", i)
		}
		if i == 2 && ok {
			t.Error("Add #2 accepted above the limit")
		}
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning})
	if bag.HasErrors() {
		t.Error("HasErrors = true with only a warning")
	}
	if !bag.HasWarnings() {
		t.Error("HasWarnings = false with a warning present")
	}
	bag.Add(diag.Diagnostic{Severity: diag.SevError})
	if !bag.HasErrors() {
		t.Error("HasErrors = false with an error present")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	mk := func(file source.FileID, start uint32, sev diag.Severity, code diag.Code) diag.Diagnostic {
		return diag.Diagnostic{
			Severity: sev,
			Code:     code,
			Primary:  source.Span{File: file, Start: start, End: start + 1},
		}
	}

	bag := diag.NewBag(10)
	bag.Add(mk(1, 5, diag.SevWarning, diag.SynUnexpectedToken))
	bag.Add(mk(0, 9, diag.SevError, diag.FlowUninitStorageAccess))
	bag.Add(mk(0, 2, diag.SevError, diag.FlowUninitStorageAccess))
	bag.Add(mk(0, 2, diag.SevWarning, diag.SynUnexpectedToken))
	bag.Sort()

	items := bag.Items()
	wantStarts := []uint32{2, 2, 9, 5}
	for i, d := range items {
		if d.Primary.Start != wantStarts[i] {
			t.Fatalf("item %d start = %d, want %d", i, d.Primary.Start, wantStarts[i])
		}
	}
	// Same position: error sorts before warning.
	if items[0].Severity != diag.SevError {
		t.Error("error did not sort before warning at equal position")
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := diag.NewBag(1)
	b := diag.NewBag(1)
	a.Add(diag.Diagnostic{})
	b.Add(diag.Diagnostic{})
	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Len after merge = %d, want 2", a.Len())
	}
	if a.Cap() < 2 {
		t.Errorf("Cap after merge = %d, want >= 2", a.Cap())
	}
}

func TestBagDedup(t *testing.T) {
	sp := source.Span{File: 1, Start: 4, End: 5}
	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.FlowUninitStorageAccess, Primary: sp})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.FlowUninitStorageAccess, Primary: sp})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.FlowUninitStorageAccess,
		Primary: source.Span{File: 1, Start: 9, End: 10}})
	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len after dedup = %d, want 2", bag.Len())
	}
}

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSetWithBase("/proj")
	id := fs.AddVirtual("/proj/vault.cin", []byte("let s: storage Account;\ns.total = 1;\n"))

	bag := diag.NewBag(10)
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.FlowUninitStorageAccess,
		source.Span{File: id, Start: 24, End: 25},
		"this variable is of storage-pointer type and is accessed without a prior assignment.").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "declared here").
		Emit()

	got := diag.FormatGolden(bag, fs, true)
	want := "error CIN3100 vault.cin:2:1 this variable is of storage-pointer type and is accessed without a prior assignment.\n" +
		"note CIN3100 vault.cin:1:5 declared here"
	if got != want {
		t.Errorf("golden output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
