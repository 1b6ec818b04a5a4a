package diff

import (
	"strings"
	"testing"

	"github.com/angeleecka/linkapp/internal/model"
)

func TestCompute(t *testing.T) {
	old := "line one\nline two\nline three\n"
	new := "line one\nline 2\nline three\n"

	r := Compute(old, new, "a", "b")

	if r.Old != "a" || r.New != "b" {
		t.Errorf("labels = (%q, %q), want (a, b)", r.Old, r.New)
	}
	if !strings.Contains(r.Diff, "- ") || !strings.Contains(r.Diff, "+ ") {
		t.Errorf("diff missing change markers:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "line three") {
		t.Errorf("diff missing context line:\n%s", r.Diff)
	}
}

func TestCompute_KeepsChangedLinesWhole(t *testing.T) {
	old := "alpha\n\"name\": \"Old name\",\nomega\n"
	new := "alpha\n\"name\": \"New name\",\nomega\n"

	r := Compute(old, new, "a", "b")

	if !strings.Contains(r.Diff, "- \"name\": \"Old name\",\n") {
		t.Errorf("deleted line fragmented:\n%s", r.Diff)
	}
	if !strings.Contains(r.Diff, "+ \"name\": \"New name\",\n") {
		t.Errorf("inserted line fragmented:\n%s", r.Diff)
	}
}

func TestCompute_Identical(t *testing.T) {
	r := Compute("same\n", "same\n", "a", "b")
	if strings.Contains(r.Diff, "- ") || strings.Contains(r.Diff, "+ ") {
		t.Errorf("identical content produced changes:\n%s", r.Diff)
	}
}

func TestCompute_CollapsesLongEqualRuns(t *testing.T) {
	var lines []string
	for range 20 {
		lines = append(lines, "same line")
	}
	old := "start\n" + strings.Join(lines, "\n") + "\nend old\n"
	new := "start\n" + strings.Join(lines, "\n") + "\nend new\n"

	r := Compute(old, new, "a", "b")
	if !strings.Contains(r.Diff, "  ...\n") {
		t.Errorf("long equal run not collapsed:\n%s", r.Diff)
	}
}

func TestSessions(t *testing.T) {
	mk := func(name, pageName string) *model.Session {
		d := model.DefaultDocument()
		d.Pages[0].Name = pageName
		return &model.Session{Name: name, Data: d}
	}

	r, err := Sessions(mk("before", "Old name"), mk("after", "New name"))
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if r.Old != "before" || r.New != "after" {
		t.Errorf("labels = (%q, %q)", r.Old, r.New)
	}
	if !strings.Contains(r.Diff, "Old name") || !strings.Contains(r.Diff, "New name") {
		t.Errorf("diff missing changed page names:\n%s", r.Diff)
	}
}

func TestFormat(t *testing.T) {
	r := Result{Old: "a", New: "b", Diff: "- x\n+ y\n"}

	plain := r.Format(false)
	if !strings.HasPrefix(plain, "--- a\n+++ b\n") {
		t.Errorf("missing header: %q", plain)
	}

	coloured := r.Format(true)
	if !strings.Contains(coloured, "\033[31m") || !strings.Contains(coloured, "\033[32m") {
		t.Errorf("missing colours: %q", coloured)
	}
}
