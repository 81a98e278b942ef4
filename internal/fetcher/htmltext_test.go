package fetcher

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "strips markup and collapses whitespace",
			html: "<p>Synthetic   content\n\tmust be labeled.</p>",
			want: "Synthetic content must be labeled.",
		},
		{
			name: "drops script style and noscript",
			html: `<style>p{}</style><script>alert(1)</script><noscript>js off</noscript><p>kept</p>`,
			want: "kept",
		},
		{
			name: "empty document",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("ExtractText: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageURLs(t *testing.T) {
	base, _ := url.Parse("https://example.com/home/")
	html := `<img src="/a.png">
		<img data-src="b.jpg">
		<img src="https://cdn.example.net/c.webp">
		<img src="/a.png">
		<img src="javascript:alert(1)">
		<img>`

	got, err := ImageURLs(strings.NewReader(html), base)
	if err != nil {
		t.Fatalf("ImageURLs: %v", err)
	}

	want := []string{
		"https://example.com/a.png",
		"https://example.com/home/b.jpg",
		"https://cdn.example.net/c.webp",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ImageURLs = %v, want %v", got, want)
	}
}

func TestImageURLsPrefersSrc(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	got, err := ImageURLs(strings.NewReader(`<img src="real.png" data-src="lazy.png">`), base)
	if err != nil {
		t.Fatalf("ImageURLs: %v", err)
	}
	if len(got) != 1 || got[0] != "https://example.com/real.png" {
		t.Fatalf("ImageURLs = %v", got)
	}
}
