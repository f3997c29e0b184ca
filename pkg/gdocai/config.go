package gdocai

import "errors"

// Config identifies the Document AI processor to use.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
	// CredentialsFile is a service account key. When empty, the
	// GOOGLE_APPLICATION_CREDENTIALS environment variable is used.
	CredentialsFile string `yaml:"credentials_file"`
	// DumpResponse, when set, is a file the raw response is written to as JSON.
	DumpResponse string `yaml:"dump_response"`
}

// Validate checks that the processor is fully specified.
func (c Config) Validate() error {
	var errs []error
	if c.ProjectID == "" {
		errs = append(errs, errors.New("documentai: project_id is required"))
	}
	if c.Location == "" {
		errs = append(errs, errors.New("documentai: location is required"))
	}
	if c.ProcessorID == "" {
		errs = append(errs, errors.New("documentai: processor_id is required"))
	}
	return errors.Join(errs...)
}
