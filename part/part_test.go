package part

import "testing"

func stand() []Part {
	return []Part{
		New("base", KindBase),
		New("fin-x-0", KindFin),
		New("fin-x-1", KindFin),
		New("fin-y-0", KindFin),
	}
}

func TestBevelPropagatesAcrossKind(t *testing.T) {
	var l List
	l.Reset(stand())
	if !l.Update("fin-x-0", FieldBevelRadius, 0.5) {
		t.Fatal("update failed")
	}
	for _, p := range l.Parts() {
		want := 0.0
		if p.Kind == KindFin {
			want = 0.5
		}
		if p.Overrides.BevelRadius != want {
			t.Errorf("%s bevel %g, want %g", p.ID, p.Overrides.BevelRadius, want)
		}
	}
}

func TestScaleIsPerPart(t *testing.T) {
	var l List
	l.Reset(stand())
	l.Update("fin-x-0", FieldScaleZ, 2)
	a, _ := l.Get("fin-x-0")
	b, _ := l.Get("fin-x-1")
	if a.Overrides.ScaleZ != 2 {
		t.Errorf("scale not applied: %g", a.Overrides.ScaleZ)
	}
	if b.Overrides.ScaleZ != 1 {
		t.Errorf("scale leaked to sibling: %g", b.Overrides.ScaleZ)
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	var l List
	l.Reset(stand())
	l.Select("fin-y-0")
	if !l.Delete("fin-y-0") {
		t.Fatal("delete failed")
	}
	if _, ok := l.Selected(); ok {
		t.Error("selection should be cleared after deleting the selected part")
	}
	if _, ok := l.Get("fin-y-0"); ok {
		t.Error("deleted part still present")
	}
	if len(l.Parts()) != 3 {
		t.Errorf("%d parts left, want 3", len(l.Parts()))
	}
}

func TestResetClearsDanglingSelection(t *testing.T) {
	var l List
	l.Reset(stand())
	l.Select("fin-x-1")
	l.Reset([]Part{New("base", KindBase)})
	if _, ok := l.Selected(); ok {
		t.Error("dangling selection survived reset")
	}
	// selection on a surviving id is kept.
	l.Reset(stand())
	l.Select("base")
	l.Reset(stand())
	if id, ok := l.Selected(); !ok || id != "base" {
		t.Errorf("surviving selection lost: %q %v", id, ok)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	var l List
	l.Reset(stand())
	if l.Update("nope", FieldScaleX, 2) {
		t.Error("update of unknown id reported success")
	}
	if l.Select("nope") {
		t.Error("select of unknown id reported success")
	}
}

func TestBevelSegmentsFloor(t *testing.T) {
	var l List
	l.Reset(stand())
	l.Update("fin-x-0", FieldBevelSegments, 0)
	p, _ := l.Get("fin-x-0")
	if p.Overrides.BevelSegments != 1 {
		t.Errorf("segments %d, want floor of 1", p.Overrides.BevelSegments)
	}
}
