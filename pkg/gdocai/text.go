package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	result := strings.Builder{}
	totalRunes := len(runes)

	for _, seg := range layout.TextAnchor.TextSegments {
		start := int(seg.StartIndex)
		end := int(seg.EndIndex)
		if start < 0 {
			start = 0
		}
		if end > totalRunes {
			end = totalRunes
		}
		if start > end {
			start = end
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// tokenText returns a token's text with surrounding whitespace removed and
// embedded line breaks turned into spaces.
func tokenText(token *documentaipb.Document_Page_Token, fullText string) string {
	text := strings.TrimSpace(textFromLayout(token.Layout, fullText))
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\n", " ")
}

// textRange returns the first text segment of a layout.
func textRange(layout *documentaipb.Document_Page_Layout) (start, end int64, ok bool) {
	if layout == nil || layout.TextAnchor == nil || len(layout.TextAnchor.TextSegments) == 0 {
		return 0, 0, false
	}
	seg := layout.TextAnchor.TextSegments[0]
	return seg.StartIndex, seg.EndIndex, true
}

// isElementInParent reports whether the element's text range lies within the parent's.
func isElementInParent(element, parent *documentaipb.Document_Page_Layout) bool {
	es, ee, ok := textRange(element)
	if !ok {
		return false
	}
	ps, pe, ok := textRange(parent)
	if !ok {
		return false
	}
	return es >= ps && ee <= pe
}
