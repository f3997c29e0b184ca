package langcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTesseract(t *testing.T) {
	tests := []struct {
		tag      string
		expected string
	}{
		{"en", "eng"},
		{"en-US", "eng"},
		{"zh-CN", "chi_sim"},
		{"zh-TW", "chi_tra"},
		{"zh-Hant", "chi_tra"},
		{"de", "deu"},
		{"fr", "fra"},
		{"ja", "jpn"},
		{"es", "spa"},
		{"ru", "rus"},
		{"is", "isl"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			code, err := Tesseract(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestTesseractInvalid(t *testing.T) {
	for _, tag := range []string{"not a tag!", "und", "und-Latn", "und-US"} {
		t.Run(tag, func(t *testing.T) {
			code, err := Tesseract(tag)
			assert.Error(t, err)
			assert.Empty(t, code)
		})
	}
}

func TestParse(t *testing.T) {
	tag, err := Parse("zh-CN")
	require.NoError(t, err)
	assert.Equal(t, "zh-CN", tag.String())
}
