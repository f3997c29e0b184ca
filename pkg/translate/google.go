package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	// GoogleWebEndpoint is the public Google Translate site.
	GoogleWebEndpoint = "https://translate.google.com"
	// GoogleWebMaxChars is the longest text the web endpoint accepts.
	GoogleWebMaxChars = 5000

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// resultClasses are the classes of the element holding the translation on
// the mobile page, newest layout first.
var resultClasses = []string{"result-container", "t0"}

// GoogleWeb translates through the mobile Google Translate page.
type GoogleWeb struct {
	endpoint string
	client   *http.Client
}

var _ Translator = (*GoogleWeb)(nil)

// NewGoogleWeb creates the google backend.
func NewGoogleWeb(opts Options) *GoogleWeb {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = GoogleWebEndpoint
	}
	return &GoogleWeb{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   opts.httpClient(),
	}
}

// Name implements Translator.
func (g *GoogleWeb) Name() string { return "google" }

// Translate implements Translator.
func (g *GoogleWeb) Translate(ctx context.Context, text, source, target string) (string, error) {
	translated, err := g.translate(ctx, text, source, target)
	return result(g.Name(), text, translated, err)
}

func (g *GoogleWeb) translate(ctx context.Context, text, source, target string) (string, error) {
	if n := utf8.RuneCountInString(text); n > GoogleWebMaxChars {
		return "", fmt.Errorf("text has %d characters, limit is %d", n, GoogleWebMaxChars)
	}

	q := url.Values{}
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"/m?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errors.New("rate limited by server (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	for _, class := range resultClasses {
		if n := findByClass(doc, class); n != nil {
			return nodeText(n), nil
		}
	}
	return "", errors.New("no translation found in response")
}

// findByClass returns the first element in document order carrying class.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "class" && containsField(a.Val, class) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func containsField(s, field string) bool {
	for _, f := range strings.Fields(s) {
		if f == field {
			return true
		}
	}
	return false
}

// nodeText concatenates the text below n; <br> becomes a newline.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}
