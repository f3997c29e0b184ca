// Package langcode converts between the BCP 47 tags translators use and the
// ISO 639-3 codes Tesseract names its trained data after.
package langcode

import (
	"fmt"

	"golang.org/x/text/language"
)

// tesseractScripts lists trained data files that are split by script rather
// than named after the bare language.
var tesseractScripts = map[string]string{
	"zh-Hans": "chi_sim",
	"zh-Hant": "chi_tra",
	"sr-Latn": "srp_latn",
	"uz-Cyrl": "uzb_cyrl",
	"az-Cyrl": "aze_cyrl",
}

// tesseractNames covers languages whose Tesseract code is not the ISO 639-3
// code x/text reports.
var tesseractNames = map[string]string{
	"zh": "chi_sim",
	"de": "deu",
	"fr": "fra",
	"nl": "nld",
	"cs": "ces",
	"el": "ell",
	"fa": "fas",
	"ms": "msa",
	"sq": "sqi",
	"hy": "hye",
	"ka": "kat",
	"is": "isl",
	"eu": "eus",
	"my": "mya",
	"cy": "cym",
	"mk": "mkd",
	"ro": "ron",
	"sk": "slk",
	"bo": "bod",
	"mi": "mri",
}

// Parse validates a BCP 47 tag such as "en" or "zh-CN".
func Parse(tag string) (language.Tag, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	return t, nil
}

// Tesseract returns the Tesseract language code for a BCP 47 tag, for example
// "eng" for "en" and "chi_sim" for "zh-CN".
func Tesseract(tag string) (string, error) {
	t, err := Parse(tag)
	if err != nil {
		return "", err
	}

	// x/text guesses a base language for "und" and similar tags; only a
	// language the tag actually names is usable for OCR.
	base, conf := t.Base()
	if conf == language.No || conf == language.Low {
		return "", fmt.Errorf("no language in tag %q", tag)
	}
	script, _ := t.Script()
	if code, ok := tesseractScripts[base.String()+"-"+script.String()]; ok {
		return code, nil
	}
	if code, ok := tesseractNames[base.String()]; ok {
		return code, nil
	}

	iso3 := base.ISO3()
	if iso3 == "" || iso3 == "und" {
		return "", fmt.Errorf("no Tesseract language for %q", tag)
	}
	return iso3, nil
}
