package cleaner

import (
	"strings"
	"testing"
)

func TestSanitizeAttributes(t *testing.T) {
	raw := `<html><body>
	<table id="t1" class="pricing" data-track="abc" style="width:100%" cellpadding="2">
		<tr><td onclick="go()" align="left">cell</td></tr>
	</table>
	<a href="/docs" target="_blank" rel="noopener" title="docs">link</a>
	<img src="i.png" alt="icon" loading="lazy">
	</body></html>`

	doc := parse(t, raw)
	removed := SanitizeAttributes(doc, nil)

	// data-track, style, onclick, target, rel, loading
	if removed != 6 {
		t.Errorf("removed = %d, want 6", removed)
	}

	out := render(t, doc)
	for _, kept := range []string{`id="t1"`, `class="pricing"`, `cellpadding="2"`, `align="left"`, `href="/docs"`, `title="docs"`, `src="i.png"`, `alt="icon"`} {
		if !strings.Contains(out, kept) {
			t.Errorf("expected %s to survive, got: %s", kept, out)
		}
	}
	for _, gone := range []string{"data-track", "style=", "onclick", "target=", "rel=", "loading="} {
		if strings.Contains(out, gone) {
			t.Errorf("expected %s to be stripped, got: %s", gone, out)
		}
	}
}

func TestSanitizeCustomKeepList(t *testing.T) {
	doc := parse(t, `<html><body><p id="x" class="y">text</p></body></html>`)
	removed := SanitizeAttributes(doc, []string{"id"})
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := doc.Find("p").Attr("class"); ok {
		t.Error("class should be removed with custom keep list")
	}
	if _, ok := doc.Find("p").Attr("id"); !ok {
		t.Error("id should survive")
	}
}

func TestSanitizeNoAttributes(t *testing.T) {
	doc := parse(t, `<html><body><p>plain</p></body></html>`)
	if removed := SanitizeAttributes(doc, nil); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
