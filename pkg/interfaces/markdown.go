package interfaces

import "time"

// MarkdownParser defines how raw markdown bytes are converted into HTML.
// Implementations should be safe for reuse across documents; per-call
// behaviour is adjusted through ParseOptions.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Document represents a markdown source file with parsed metadata and body
// content. The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so
	// sync workflows can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from markdown files. The typed
// fields cover the blog's canonical keys; everything else lands in Custom,
// and Raw preserves the full mapping for auditing.
type FrontMatter struct {
	Title    string         `yaml:"title" json:"title"`
	Summary  string         `yaml:"summary" json:"summary"`
	Template string         `yaml:"template" json:"template"`
	Tags     []string       `yaml:"tags" json:"tags"`
	Author   string         `yaml:"author" json:"author"`
	Date     time.Time      `yaml:"date" json:"date"`
	Draft    bool           `yaml:"draft" json:"draft"`
	Custom   map[string]any `yaml:",inline" json:"custom"`
	Raw      map[string]any `yaml:"-" json:"raw"`
}
