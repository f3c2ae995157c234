package cleaner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestFlattenTabContent(t *testing.T) {
	raw := `<html><body>
	<div class="tab-content">
		<div class="tab-panel" id="tabContent1">
			<h2>Burstable</h2>
			<p>Workloads with flexible compute needs.</p>
			<table id="flex_1"><tr><th>Instance</th><th>Price</th></tr><tr><td>B1MS</td><td>￥0.1449/小时</td></tr></table>
		</div>
		<div class="tab-panel" id="tabContent2">
			<h2>General purpose</h2>
			<p>Most business workloads.</p>
			<table id="flex_2"><tr><th>Instance</th><th>Price</th></tr><tr><td>D2ds v4</td><td>￥1.1220/小时</td></tr></table>
		</div>
	</div>
	</body></html>`

	doc := parse(t, raw)
	stats := New(nil).Clean(doc)

	if got := doc.Find("div.tab-content").Length(); got != 0 {
		t.Errorf("tab-content elements remaining = %d, want 0", got)
	}
	if got := doc.Find("div.tab-panel").Length(); got != 0 {
		t.Errorf("tab-panel elements remaining = %d, want 0", got)
	}
	if got := doc.Find("table").Length(); got != 2 {
		t.Fatalf("tables after flatten = %d, want 2", got)
	}

	// Relative panel order survives the hoist.
	var ids []string
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("id", ""))
	})
	if len(ids) != 2 || ids[0] != "flex_1" || ids[1] != "flex_2" {
		t.Errorf("table order = %v, want [flex_1 flex_2]", ids)
	}

	if stats.TabContainersFlat == 0 {
		t.Error("expected at least one flattened container in stats")
	}
}

func TestFlattenSubtreeFallback(t *testing.T) {
	// Panel content nested under a tag outside the content set: no direct
	// children match, so the whole-subtree scan must find the table.
	raw := `<html><body>
	<div class="tab-content">
		<div class="tab-panel"><section><table id="deep"><tr><td>￥1/小时</td></tr></table></section></div>
	</div>
	</body></html>`

	doc := parse(t, raw)
	New(nil).Clean(doc)

	if doc.Find("table#deep").Length() != 1 {
		t.Error("nested table should be hoisted via subtree fallback")
	}
	if doc.Find("div.tab-content").Length() != 0 {
		t.Error("tab-content should be removed after extraction")
	}
}

func TestFlattenSkipsNestedScaffolding(t *testing.T) {
	raw := `<html><body>
	<div class="tab-content">
		<div class="tab-panel">
			<h3>Tier</h3>
			<div class="dropdown-container"><p>picker text</p></div>
			<table id="kept"><tr><td>￥2/小时</td></tr></table>
		</div>
	</div>
	</body></html>`

	doc := parse(t, raw)
	New(nil).Clean(doc)

	if doc.Find("div.dropdown-container").Length() != 0 {
		t.Error("dropdown scaffolding must not be re-inserted")
	}
	if doc.Find("table#kept").Length() != 1 {
		t.Error("content table must be hoisted")
	}
	if doc.Find("h3").Length() != 1 {
		t.Error("heading must be hoisted")
	}
}

func TestFlattenTabLikeContainers(t *testing.T) {
	for _, class := range []string{"tab-container-box", "technical-azure-selector", "pricing-detail-tab"} {
		t.Run(class, func(t *testing.T) {
			raw := `<html><body><div class="` + class + `"><span><h4>Storage</h4><table id="s1"><tr><td>￥0.6/GB/月</td></tr></table></span></div></body></html>`
			doc := parse(t, raw)
			New(nil).Clean(doc)

			if doc.Find("div."+class).Length() != 0 {
				t.Errorf("%s container should be removed", class)
			}
			if doc.Find("table#s1").Length() != 1 {
				t.Error("table should be hoisted out of container")
			}
			if doc.Find("h4").Length() != 1 {
				t.Error("heading should be hoisted out of container")
			}
		})
	}
}

func TestFlattenedContentIsACopy(t *testing.T) {
	raw := `<html><body>
	<div class="tab-content">
		<div class="tab-panel"><p>tier description</p><table id="x"><tr><td>￥3/小时</td></tr></table></div>
	</div>
	</body></html>`

	doc := parse(t, raw)
	New(nil).Clean(doc)

	// The hoisted nodes are free-standing copies: exactly one of each must
	// remain and the originals must be gone with their container.
	if got := doc.Find("table#x").Length(); got != 1 {
		t.Errorf("hoisted table count = %d, want 1", got)
	}
	out := render(t, doc)
	if strings.Count(out, "tier description") != 1 {
		t.Errorf("content duplicated or lost: %s", out)
	}
}
