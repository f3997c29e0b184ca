// Package translate turns text in one language into text in another.
//
// A Translator wraps one backend:
//
// - google: the public Google Translate web endpoint (no credentials needed)
// - cloud: the Cloud Translation API v2
// - openai: a chat completion model through an OpenAI compatible API
//
// Every failure is reported as a *TranslationError carrying the backend name and
// the text that could not be translated, so callers can fall back per request.
package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single translation request.
const DefaultTimeout = 30 * time.Second

// ErrEmptyTranslation is returned when a backend answers with no text.
var ErrEmptyTranslation = errors.New("empty translation")

// Translator translates text between two languages.
type Translator interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// Translate returns text translated from source to target. Language codes
	// are BCP 47 tags such as "en" or "zh-CN".
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// TranslationError reports a failed translation request.
type TranslationError struct {
	Backend string
	Text    string
	Err     error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s translation failed for %q: %v", e.Backend, e.Text, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Options configures a backend. Fields a backend has no use for are ignored.
type Options struct {
	// Endpoint overrides the backend's base URL.
	Endpoint string
	// APIKey authenticates the cloud and openai backends.
	APIKey string
	// CredentialsFile is a service account key for the cloud backend.
	CredentialsFile string
	// Model is the chat model of the openai backend.
	Model string
	// Timeout bounds each request. Zero selects DefaultTimeout.
	Timeout time.Duration
	// HTTPClient replaces the client built from Timeout.
	HTTPClient *http.Client
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// result wraps a backend's answer, turning errors and blank output into a
// *TranslationError. A paragraph translates to a single line, so line breaks
// and whitespace runs in the answer become single spaces.
func result(backend, text, translated string, err error) (string, error) {
	if err != nil {
		return "", &TranslationError{Backend: backend, Text: text, Err: err}
	}
	translated = strings.Join(strings.Fields(translated), " ")
	if translated == "" {
		return "", &TranslationError{Backend: backend, Text: text, Err: ErrEmptyTranslation}
	}
	return translated, nil
}
