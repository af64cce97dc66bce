package htmldoc

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses well-formed HTML", func(t *testing.T) {
		t.Parallel()

		doc, err := Parse(`<html><head><title>Hi</title></head><body><p>hello</p></body></html>`)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := len(doc.Select("title")); got != 1 {
			t.Errorf("Select(title) returned %d elements, want 1", got)
		}
	})

	t.Run("parses malformed HTML without error", func(t *testing.T) {
		t.Parallel()

		doc, err := Parse(`<p>unclosed <div><a href="/x">link`)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got := len(doc.Select("a")); got != 1 {
			t.Errorf("Select(a) returned %d elements, want 1", got)
		}
	})

	t.Run("parses empty content", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse(""); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
	})
}

func TestDocumentSelect(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<html><body>
		<a href="/a">one</a>
		<a href="/b">two</a>
		<link rel="canonical" href="https://example.com/">
		<link rel="alternate" hreflang="en" href="https://example.com/">
	</body></html>`)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(doc.Select("a")); got != 2 {
		t.Errorf("Select(a) returned %d elements, want 2", got)
	}
	if got := len(doc.SelectAttrEqual("link", "rel", "canonical")); got != 1 {
		t.Errorf("SelectAttrEqual(link, rel, canonical) returned %d elements, want 1", got)
	}
	if got := len(doc.SelectWithAttr("link", "hreflang")); got != 1 {
		t.Errorf("SelectWithAttr(link, hreflang) returned %d elements, want 1", got)
	}
	if _, ok := doc.First("link", "rel", "canonical"); !ok {
		t.Error("First(link, rel, canonical) = false, want true")
	}
	if _, ok := doc.First("meta", "name", "robots"); ok {
		t.Error("First(meta, name, robots) = true, want false")
	}
}

func TestDocumentSelectAttrEqualCaseInsensitive(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<head><meta name="ROBOTS" content="noindex"></head>`)
	if err != nil {
		t.Fatal(err)
	}
	got := doc.SelectAttrEqual("meta", "name", "robots")
	if len(got) != 1 {
		t.Fatalf("SelectAttrEqual matched %d elements, want 1", len(got))
	}
	if got[0].Attr("content") != "noindex" {
		t.Errorf("content = %q, want %q", got[0].Attr("content"), "noindex")
	}
}

func TestDocumentIDs(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<body><h2 id="intro">Intro</h2><p id="details">...</p><p>no id</p></body>`)
	if err != nil {
		t.Fatal(err)
	}

	ids := doc.IDs()
	if len(ids) != 2 {
		t.Fatalf("IDs() returned %d entries, want 2", len(ids))
	}
	for _, want := range []string{"intro", "details"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("IDs() missing %q", want)
		}
	}
	if !doc.HasID("intro") {
		t.Error("HasID(intro) = false, want true")
	}
	if doc.HasID("missing") {
		t.Error("HasID(missing) = true, want false")
	}
}

func TestElementAttr(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<body><img src="/a.png" alt=""><img src="/b.png"></body>`)
	if err != nil {
		t.Fatal(err)
	}

	imgs := doc.Select("img")
	if len(imgs) != 2 {
		t.Fatalf("Select(img) returned %d elements, want 2", len(imgs))
	}
	if !imgs[0].HasAttr("alt") {
		t.Error(`img with alt="" should report HasAttr(alt) = true`)
	}
	if imgs[1].HasAttr("alt") {
		t.Error("img without alt should report HasAttr(alt) = false")
	}
	if got := imgs[0].Attr("alt"); got != "" {
		t.Errorf("Attr(alt) = %q, want empty", got)
	}
}

func TestElementText(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<body><a href="/x">click <strong>here</strong></a></body>`)
	if err != nil {
		t.Fatal(err)
	}

	links := doc.Select("a")
	if len(links) != 1 {
		t.Fatalf("Select(a) returned %d elements, want 1", len(links))
	}
	if got := links[0].Text(); got != "click here" {
		t.Errorf("Text() = %q, want %q", got, "click here")
	}
}

func TestElementChildren(t *testing.T) {
	t.Parallel()

	doc, err := Parse(`<body><form><input type="text"><select></select></form></body>`)
	if err != nil {
		t.Fatal(err)
	}

	forms := doc.Select("form")
	if len(forms) != 1 {
		t.Fatalf("Select(form) returned %d elements, want 1", len(forms))
	}
	var tags []string
	forms[0].Children(func(el Element) {
		tags = append(tags, el.Tag())
	})
	if len(tags) != 2 {
		t.Fatalf("Children visited %d elements, want 2: %v", len(tags), tags)
	}
}
