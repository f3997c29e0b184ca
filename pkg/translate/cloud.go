package translate

import (
	"context"
	"errors"
	"fmt"
	"html"

	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// Cloud translates with the Cloud Translation API v2.
type Cloud struct {
	svc *translatev2.Service
}

var _ Translator = (*Cloud)(nil)

// NewCloud creates the cloud backend. It authenticates with opts.APIKey when
// set, otherwise with opts.CredentialsFile or the application default
// credentials.
func NewCloud(ctx context.Context, opts Options) (*Cloud, error) {
	var clientOpts []option.ClientOption
	switch {
	case opts.HTTPClient != nil:
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := translatev2.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Translation client: %w", err)
	}
	return &Cloud{svc: svc}, nil
}

// Name implements Translator.
func (c *Cloud) Name() string { return "cloud" }

// Translate implements Translator.
func (c *Cloud) Translate(ctx context.Context, text, source, target string) (string, error) {
	translated, err := c.translate(ctx, text, source, target)
	return result(c.Name(), text, translated, err)
}

func (c *Cloud) translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := c.svc.Translations.List([]string{text}, target).
		Source(source).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("response has no translations")
	}
	// The API escapes entities even for plain text in some cases.
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}
