package flexihtml

import (
	"strings"
	"testing"
)

func TestHTMLEncode(t *testing.T) {
	got := HTMLEncode(`<a href="x">it's & more</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;it&#039;s &amp; more&lt;/a&gt;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlattenAttributes(t *testing.T) {
	got := FlattenAttributes(map[string]interface{}{
		"id":    "box",
		"class": "form-control",
		"style": "",
	})
	want := `class="form-control" id="box"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = FlattenAttributes(map[string]interface{}{"checked": true, "multiple": false})
	if !strings.Contains(got, `checked="1"`) || !strings.Contains(got, `multiple="0"`) {
		t.Errorf("bool attributes = %q", got)
	}

	got = FlattenAttributes(map[string]interface{}{"data-items": []string{"a", "b"}})
	if got != `data-items="[&quot;a&quot;,&quot;b&quot;]"` {
		t.Errorf("list attribute = %q", got)
	}
}

func TestUUIDText(t *testing.T) {
	if UUIDText("products") != UUIDText("products") {
		t.Error("uuid text not stable for the same input")
	}
	if UUIDText("products") == UUIDText("orders") {
		t.Error("uuid text identical for different inputs")
	}
	if len(ShortUUIDText("products")) != 8 {
		t.Errorf("short uuid length = %d, want 8", len(ShortUUIDText("products")))
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"created_at":  "Created At",
		"title":       "Title",
		"a_b_c":       "A B C",
		"updated  at": "Updated  At",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
