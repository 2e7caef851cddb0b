package note

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/router"
)

type recorder struct {
	saved []string
	err   error
}

func (r *recorder) save(_ context.Context, content string) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, content)
	return nil
}

func typeText(e *EditorScreen, s string) {
	for _, r := range s {
		e.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

var ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}

func TestEditor_PrefilledAndSave(t *testing.T) {
	rec := &recorder{}
	e := New(t.Context(), "Block Note", "Morning", "bayes", rec.save)
	if e.Value() != "bayes" {
		t.Fatalf("Value = %q", e.Value())
	}

	typeText(e, " rule")
	_, cmd := e.Update(ctrlS)

	if len(rec.saved) != 1 || rec.saved[0] != "bayes rule" {
		t.Fatalf("saved = %q", rec.saved)
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("save should close the editor")
	}
}

func TestEditor_EscDiscards(t *testing.T) {
	rec := &recorder{}
	e := New(t.Context(), "Task Note", "task", "", rec.save)
	typeText(e, "draft")

	_, cmd := e.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should close the editor")
	}
	if len(rec.saved) != 0 {
		t.Error("esc must not save")
	}
}

func TestEditor_SaveErrorStaysOpen(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	e := New(t.Context(), "Task Note", "task", "x", rec.save)

	_, cmd := e.Update(ctrlS)
	if cmd != nil {
		t.Error("failed save should keep the editor open")
	}
	if !strings.Contains(e.View(80, 20), "disk full") {
		t.Error("view should show the save error")
	}
}

func TestEditor_CapturesInput(t *testing.T) {
	e := New(t.Context(), "Task Note", "task", "", (&recorder{}).save)
	if !e.CapturingInput() {
		t.Error("editor should capture input")
	}
	if e.Title() != "Task Note" {
		t.Errorf("Title = %q", e.Title())
	}
}
