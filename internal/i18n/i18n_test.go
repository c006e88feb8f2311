package i18n

import (
	"testing"
)

func TestSupported(t *testing.T) {
	langs := Supported()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "zh" {
		t.Fatalf("Supported() = %v, want [en zh]", langs)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"zh", "zh"},
		{"zh-CN", "zh"},
		{"ZH_cn", "zh"},
		{" en ", "en"},
		{"fr", DefaultLang},
		{"", DefaultLang},
	}
	for _, tt := range tests {
		if got := New(tt.in).Lang(); got != tt.want {
			t.Errorf("New(%q).Lang() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	en := New("en")
	if got := en.T("kind.flowchart"); got != "Flowchart" {
		t.Errorf("en kind.flowchart = %q", got)
	}
	zh := New("zh")
	if got := zh.T("kind.flowchart"); got != "流程图" {
		t.Errorf("zh kind.flowchart = %q", got)
	}
	if got := zh.T("no.such.key"); got != "no.such.key" {
		t.Errorf("missing key should return itself, got %q", got)
	}
	if zh.Has("no.such.key") {
		t.Error("Has reported a missing key")
	}
	if got := en.T("status."); got != "None" {
		t.Errorf("empty status label = %q, want None", got)
	}
}

func TestSetLocale(t *testing.T) {
	l := New("en")
	l.SetLocale("zh")
	if got := l.T("fallback.mindmap_root"); got != "根节点" {
		t.Errorf("after switch got %q", got)
	}
	l.SetLocale("xx")
	if l.Lang() != DefaultLang {
		t.Errorf("unknown locale selected %q", l.Lang())
	}
}

func TestTf(t *testing.T) {
	l := New("en")
	got := l.Tf("session.inserted", map[string]any{"kind": "Pie chart", "file": "notes.md"})
	if got != "Inserted Pie chart into notes.md" {
		t.Errorf("Tf = %q", got)
	}
	got = l.Tf("assets.referenced", map[string]any{"name": "a.png"})
	if got != "a.png is referenced by {{count}} notes" {
		t.Errorf("unfilled placeholder should stay, got %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	all := loadCatalogs()
	for key := range all["en"] {
		if _, ok := all["zh"][key]; !ok {
			t.Errorf("zh is missing %q", key)
		}
	}
	for key := range all["zh"] {
		if _, ok := all["en"][key]; !ok {
			t.Errorf("en is missing %q", key)
		}
	}
}

func TestFallbacks(t *testing.T) {
	fb := New("en").Fallbacks()
	if fb.QuadrantXLeft != "Low" || fb.GanttSection != "Default" || fb.TimelinePeriod != "Period" {
		t.Errorf("unexpected english fallbacks: %+v", fb)
	}
	zh := New("zh").Fallbacks()
	if zh.MindmapRoot != "根节点" {
		t.Errorf("zh root = %q", zh.MindmapRoot)
	}
}
