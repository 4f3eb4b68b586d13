package domain

import "fmt"

// Defaults for a run. The paths mirror the layout the tagger was first
// used with: documents under src/test, exclusions and output under src.
const (
	DefaultRoot           = "src/test"
	DefaultExclusionsPath = "src/tag_exclusions.csv"
	DefaultOutputPath     = "src/documents.json"
	DefaultTopK           = 50
	DefaultMinGraphemes   = 3
	DefaultYearLength     = 4
)

// Settings is the complete run configuration.
type Settings struct {
	// Root is the directory to process.
	Root string

	// Recursive enables descending into subdirectories.
	Recursive bool

	// ExclusionsPath is the CSV file holding excluded terms.
	ExclusionsPath string

	// OutputPath is where the JSON result set is written.
	OutputPath string

	// TopK caps the number of ranked terms per document.
	TopK int

	// Workers is the number of files processed concurrently.
	// Values below 2 process files one after another.
	Workers int

	// FilesPerSecond throttles extraction. Zero means unlimited.
	FilesPerSecond float64

	// PatchMetadata enables updating sibling <name>.metadata.json files.
	PatchMetadata bool

	// SQLitePath enables the run archive when non-empty.
	SQLitePath string

	// Verbose enables debug logging.
	Verbose bool

	// MinGraphemes is the shortest non-numeric keyword kept.
	MinGraphemes int

	// YearLength is the only length a numeric keyword may have.
	YearLength int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Root:           DefaultRoot,
		Recursive:      true,
		ExclusionsPath: DefaultExclusionsPath,
		OutputPath:     DefaultOutputPath,
		TopK:           DefaultTopK,
		Workers:        1,
		MinGraphemes:   DefaultMinGraphemes,
		YearLength:     DefaultYearLength,
	}
}

// Validate checks the settings for values no run can use.
func (s Settings) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("%w: root is required", ErrInvalidInput)
	}
	if s.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.TopK)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidInput, s.Workers)
	}
	if s.FilesPerSecond < 0 {
		return fmt.Errorf("%w: files_per_second must not be negative", ErrInvalidInput)
	}
	return nil
}
