package diff

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestRenderDiffPanes(t *testing.T) {
	before := "if (user.password === password) {\n  // Logic\n}"
	after := "if (await bcrypt.compare(password, user.password)) {\n  // Logic\n}\nreturn"

	sbs := RenderDiff(before, after)
	if len(sbs.Removed) != 3 {
		t.Fatalf("expected 3 removed rows, got %d", len(sbs.Removed))
	}
	if len(sbs.Added) != 4 {
		t.Fatalf("expected 4 added rows, got %d", len(sbs.Added))
	}
	if sbs.Rows() != 4 {
		t.Errorf("expected 4 rows, got %d", sbs.Rows())
	}

	for i, l := range sbs.Removed {
		if l.Number != i+1 {
			t.Errorf("removed row %d numbered %d", i, l.Number)
		}
		if l.Side != SideRemoved {
			t.Errorf("removed row %d tagged %s", i, l.Side)
		}
	}
	for _, l := range sbs.Added {
		if l.Side != SideAdded {
			t.Errorf("added row tagged %s", l.Side)
		}
	}

	if !strings.Contains(sbs.Added[0].Text, `<span class="token-function">compare</span>`) {
		t.Errorf("expected highlighted markup, got %s", sbs.Added[0].Text)
	}
}

func TestRenderDiffEmptyLines(t *testing.T) {
	sbs := RenderDiff("a\n\nb", "")
	if sbs.Removed[1].Text != NBSP {
		t.Errorf("expected NBSP for empty line, got %q", sbs.Removed[1].Text)
	}
	if len(sbs.Added) != 1 || sbs.Added[0].Text != NBSP {
		t.Errorf("expected one NBSP row for empty after, got %+v", sbs.Added)
	}
}

func TestRenderDiffCRLF(t *testing.T) {
	sbs := RenderDiff("a\r\nb", "c")
	if len(sbs.Removed) != 2 || Plain(sbs.Removed[0].Tokens) != "a" {
		t.Errorf("CRLF not split cleanly: %+v", sbs.Removed)
	}
}

func TestRenderDiffRowCounts(t *testing.T) {
	line := rapid.StringMatching(`[a-z (){}'"/=<>]{0,12}`)
	rapid.Check(t, func(t *rapid.T) {
		before := strings.Join(rapid.SliceOf(line).Draw(t, "before"), "\n")
		after := strings.Join(rapid.SliceOf(line).Draw(t, "after"), "\n")

		sbs := RenderDiff(before, after)
		if len(sbs.Removed) != CountLines(before) {
			t.Fatalf("removed rows %d != CountLines %d", len(sbs.Removed), CountLines(before))
		}
		if len(sbs.Added) != CountLines(after) {
			t.Fatalf("added rows %d != CountLines %d", len(sbs.Added), CountLines(after))
		}
	})
}
