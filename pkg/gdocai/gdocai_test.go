package gdocai

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/ocrtranslate/pkg/hocr"
	"github.com/gardar/ocrtranslate/pkg/imageio"
	"github.com/gardar/ocrtranslate/pkg/ocr"
)

func layout(start, end int64, x1, y1, x2, y2 float32) *documentaipb.Document_Page_Layout {
	return &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
				{StartIndex: start, EndIndex: end},
			},
		},
		BoundingPoly: &documentaipb.BoundingPoly{
			NormalizedVertices: []*documentaipb.NormalizedVertex{
				{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
			},
		},
		Confidence: 0.5,
	}
}

// sampleDocument holds two blocks. The first has one paragraph of two lines,
// the second a single line whose paragraph is not inside any block.
func sampleDocument() *documentaipb.Document {
	text := "Hello world\nam here\nStray\n"
	return &documentaipb.Document{
		Text: text,
		Pages: []*documentaipb.Document_Page{{
			PageNumber: 1,
			Dimension:  &documentaipb.Document_Page_Dimension{Width: 200, Height: 100},
			DetectedLanguages: []*documentaipb.Document_Page_DetectedLanguage{
				{LanguageCode: "en", Confidence: 0.9},
			},
			Blocks: []*documentaipb.Document_Page_Block{
				{Layout: layout(0, 20, 0, 0, 0.5, 0.5)},
			},
			Paragraphs: []*documentaipb.Document_Page_Paragraph{
				{Layout: layout(0, 20, 0, 0, 0.5, 0.5)},
				{Layout: layout(20, 26, 0, 0.75, 0.25, 1)},
			},
			Lines: []*documentaipb.Document_Page_Line{
				{Layout: layout(0, 12, 0, 0, 0.5, 0.25)},
				{Layout: layout(12, 20, 0, 0.25, 0.5, 0.5)},
				{Layout: layout(20, 26, 0, 0.75, 0.25, 1)},
			},
			Tokens: []*documentaipb.Document_Page_Token{
				{Layout: layout(0, 6, 0, 0, 0.25, 0.25)},
				{Layout: layout(6, 12, 0.25, 0, 0.5, 0.25)},
				{Layout: layout(12, 15, 0, 0.25, 0.25, 0.5)},
				{Layout: layout(15, 20, 0.25, 0.25, 0.5, 0.5)},
				{Layout: layout(20, 26, 0, 0.75, 0.25, 1)},
			},
		}},
	}
}

func TestDocumentHOCR(t *testing.T) {
	h := DocumentHOCR(sampleDocument())

	assert.Equal(t, "en", h.Language)
	assert.Equal(t, "1", h.Metadata["ocr-number-of-pages"])
	require.Len(t, h.Pages, 1)

	page := h.Pages[0]
	assert.Equal(t, hocr.NewBoundingBox(0, 0, 200, 100), page.BBox)
	require.Len(t, page.Areas, 1)
	require.Len(t, page.Areas[0].Paragraphs, 1)
	require.Len(t, page.Areas[0].Paragraphs[0].Lines, 2)
	require.Len(t, page.Paragraphs, 1)
	assert.Empty(t, page.Lines)

	first := page.Areas[0].Paragraphs[0].Lines[0]
	assert.Equal(t, hocr.NewBoundingBox(0, 0, 100, 25), first.BBox)
	require.Len(t, first.Words, 2)
	assert.Equal(t, "Hello", first.Words[0].Text)
	assert.Equal(t, "world", first.Words[1].Text)
	assert.Equal(t, hocr.NewBoundingBox(50, 0, 100, 25), first.Words[1].BBox)
	assert.Equal(t, 50.0, first.Words[1].Confidence)
}

func TestDocumentHOCRTokens(t *testing.T) {
	tokens := ocr.TokensFromHOCR(DocumentHOCR(sampleDocument()))
	lines := ocr.GroupLines(tokens)

	assert.Equal(t, []string{"Hello world", "am here", "Stray"}, ocr.Texts(lines))
	assert.Equal(t, ocr.PositionKey{Block: 1, Paragraph: 1, Line: 2}, lines[1].Key)
	assert.Equal(t, ocr.PositionKey{Block: 2, Paragraph: 1, Line: 1}, lines[2].Key)
}

func TestLayoutBBoxAbsoluteVertices(t *testing.T) {
	l := &documentaipb.Document_Page_Layout{
		BoundingPoly: &documentaipb.BoundingPoly{
			Vertices: []*documentaipb.Vertex{{X: 10, Y: 20}, {X: 40, Y: 20}, {X: 40, Y: 30}, {X: 10, Y: 30}},
		},
	}
	assert.Equal(t, hocr.NewBoundingBox(10, 20, 40, 30), layoutBBox(l, nil))
	assert.Equal(t, hocr.BoundingBox{}, layoutBBox(nil, nil))
}

func TestTextFromLayout(t *testing.T) {
	doc := sampleDocument()
	assert.Equal(t, "Hello ", textFromLayout(doc.Pages[0].Tokens[0].Layout, doc.Text))
	assert.Equal(t, "", textFromLayout(nil, doc.Text))
	assert.Equal(t, "Stray", tokenText(doc.Pages[0].Tokens[4], doc.Text))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{ProjectID: "p", Location: "eu", ProcessorID: "x"}.Validate())

	err := Config{Location: "eu"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_id")
	assert.Contains(t, err.Error(), "processor_id")
	assert.NotContains(t, err.Error(), "location")

	_, err = New(Config{}, nil)
	assert.Error(t, err)
}

func TestEngineRecognize(t *testing.T) {
	dump := filepath.Join(t.TempDir(), "response.json")
	e, err := New(Config{ProjectID: "p", Location: "eu", ProcessorID: "x", DumpResponse: dump}, nil)
	require.NoError(t, err)

	var gotMIME string
	e.process = func(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error) {
		gotMIME = mimeType
		return sampleDocument(), nil
	}

	rec, err := e.Recognize(context.Background(), imageio.Image{Data: []byte("x"), Format: "jpeg"}, "eng")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", gotMIME)
	assert.Len(t, rec.Tokens, 5)
	assert.Equal(t, 200, rec.Width)
	assert.Equal(t, 100, rec.Height)
	assert.NotNil(t, rec.HOCR)

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello world")
}

func TestEngineRecognizeError(t *testing.T) {
	e, err := New(Config{ProjectID: "p", Location: "eu", ProcessorID: "x"}, nil)
	require.NoError(t, err)
	e.process = func(ctx context.Context, content []byte, mimeType string) (*documentaipb.Document, error) {
		return nil, errors.New("quota exceeded")
	}

	_, err = e.Recognize(context.Background(), imageio.Image{Data: []byte("x")}, "eng")
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestToJSON(t *testing.T) {
	out, err := ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)

	out, err = ToJSON(&documentaipb.Document{Text: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi"}`, out)
}
