package enrich

import "testing"

func TestExtractMeta(t *testing.T) {
	html := `<html><head>
		<title>  Example Site — Home  </title>
		<meta name="description" content="A site about examples.">
	</head><body></body></html>`

	meta, err := ExtractMeta(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Example Site — Home" {
		t.Errorf("unexpected title %q", meta.Title)
	}
	if meta.Description != "A site about examples." {
		t.Errorf("unexpected description %q", meta.Description)
	}
}

func TestExtractMeta_MissingTagsDefaultEmpty(t *testing.T) {
	meta, err := ExtractMeta(`<html><head></head><body><h1>hello</h1></body></html>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "" || meta.Description != "" {
		t.Errorf("expected empty defaults, got %+v", meta)
	}
}

func TestExtractMeta_IgnoresOtherMetaTags(t *testing.T) {
	html := `<html><head>
		<meta name="keywords" content="one,two">
		<meta property="og:description" content="social blurb">
	</head></html>`

	meta, err := ExtractMeta(html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Description != "" {
		t.Errorf("only the description meta should be read, got %q", meta.Description)
	}
}
