package scraper

import (
	"reflect"
	"testing"

	"litenews-scraper/internal/config"
)

func newTestExtractor() *FieldExtractor {
	return NewFieldExtractor(config.DefaultExtractConfig())
}

func TestFieldExtractor_TitleCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "h1 wins over document title",
			html: `<html><head><title>Doc Title</title></head><body><h1>Heading</h1></body></html>`,
			want: "Heading",
		},
		{
			name: "document title when no h1",
			html: `<html><head><title>Doc Title</title></head><body><p>x</p></body></html>`,
			want: "Doc Title",
		},
		{
			name: "article-title class",
			html: `<html><body><div class="article-title">Classy Title</div></body></html>`,
			want: "Classy Title",
		},
		{
			name: "headline class substring",
			html: `<html><body><span class="page-headline-main">Sub Headline</span></body></html>`,
			want: "Sub Headline",
		},
		{
			name: "empty h1 falls through to title",
			html: `<html><head><title>Doc Title</title></head><body><h1>   </h1></body></html>`,
			want: "Doc Title",
		},
		{
			name: "nothing matches",
			html: `<html><body><p>just text</p></body></html>`,
			want: "",
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			if got := e.extractTitle(doc); got != tt.want {
				t.Errorf("extractTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldExtractor_DateCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "time element display text",
			html: `<html><body><time>January 5, 2026</time></body></html>`,
			want: "January 5, 2026",
		},
		{
			name: "datetime attribute preferred over display text",
			html: `<html><body><time datetime="2026-01-05T12:00:00Z">January 5, 2026</time></body></html>`,
			want: "2026-01-05T12:00:00Z",
		},
		{
			name: "timestamp class",
			html: `<html><body><div class="timestamp">Posted yesterday</div></body></html>`,
			want: "Posted yesterday",
		},
		{
			name: "date class substring",
			html: `<html><body><span class="pub-date-line">5 Jan</span></body></html>`,
			want: "5 Jan",
		},
		{
			name: "bare datetime attribute",
			html: `<html><body><span datetime="2026-01-05">ignored</span></body></html>`,
			want: "2026-01-05",
		},
		{
			name: "no date",
			html: `<html><body><p>text</p></body></html>`,
			want: "",
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			if got := e.extractDate(doc); got != tt.want {
				t.Errorf("extractDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldExtractor_AuthorGroups(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "author class group",
			html: `<html><body><div class="author">By Jane Doe and John Smith</div></body></html>`,
			want: []string{"Jane Doe", "John Smith"},
		},
		{
			name: "first group wins over later groups",
			html: `<html><body>
				<div class="author">By Jane Doe</div>
				<div class="byline--lite">By Other Person</div>
			</body></html>`,
			want: []string{"Jane Doe"},
		},
		{
			name: "substring class group when no exact author class",
			html: `<html><body><div class="story-author-name">By John Smith</div></body></html>`,
			want: []string{"John Smith"},
		},
		{
			name: "rel author marker",
			html: `<html><body><a rel="author" href="/p">Jane Doe</a></body></html>`,
			want: []string{"Jane Doe"},
		},
		{
			name: "site byline class",
			html: `<html><body><p class="byline--lite">By Jane Doe, CNN</p></body></html>`,
			want: []string{"Jane Doe"},
		},
		{
			name: "duplicates across elements removed",
			html: `<html><body>
				<div class="author">By Jane Doe</div>
				<div class="author">By Jane Doe and John Smith</div>
			</body></html>`,
			want: []string{"Jane Doe", "John Smith"},
		},
		{
			name: "no authors",
			html: `<html><body><p>text</p></body></html>`,
			want: nil,
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			got := e.extractAuthors(doc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractAuthors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldExtractor_BodyCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "article container paragraphs joined",
			html: `<html><body><article><p>Paragraph one.</p><p>Paragraph two.</p></article></body></html>`,
			want: "Paragraph one.\n\nParagraph two.",
		},
		{
			name: "empty paragraphs skipped",
			html: `<html><body><article><p>One.</p><p>   </p><p>Two.</p></article></body></html>`,
			want: "One.\n\nTwo.",
		},
		{
			name: "container without paragraphs falls through",
			html: `<html><body><article><div>no paragraphs</div></article><main><p>Main text.</p></main></body></html>`,
			want: "Main text.",
		},
		{
			name: "article-body class",
			html: `<html><body><div class="article-body"><p>Body text.</p></div></body></html>`,
			want: "Body text.",
		},
		{
			name: "story-body substring class",
			html: `<html><body><div class="cnn-story-body-wrap"><p>Story text.</p></div></body></html>`,
			want: "Story text.",
		},
		{
			name: "fallback to all document paragraphs",
			html: `<html><body><div><p>Loose one.</p></div><p>Loose two.</p></body></html>`,
			want: "Loose one.\n\nLoose two.",
		},
		{
			name: "no paragraphs anywhere",
			html: `<html><body><div>plain text</div></body></html>`,
			want: "",
		},
	}

	e := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			if got := e.extractBody(doc, "https://lite.cnn.com/sample"); got != tt.want {
				t.Errorf("extractBody = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldExtractor_Extract(t *testing.T) {
	html := `<html><body>
		<h1>Sample Title</h1>
		<div class="author">By Jane Doe and John Smith</div>
		<article><p>Paragraph one.</p><p>Paragraph two.</p></article>
	</body></html>`

	doc := mustParse(t, html)
	result := newTestExtractor().Extract(doc, "https://lite.cnn.com/sample")

	if result.Title != "Sample Title" {
		t.Errorf("Title = %q", result.Title)
	}
	if want := []string{"Jane Doe", "John Smith"}; !reflect.DeepEqual(result.Authors, want) {
		t.Errorf("Authors = %v, want %v", result.Authors, want)
	}
	if want := "Paragraph one.\n\nParagraph two."; result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
}
