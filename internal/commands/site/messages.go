package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	syncContentMessageType = "blog.site.sync_content"
	buildSiteMessageType   = "blog.site.build"
)

// SyncContentCommand triggers a filesystem walk for markdown documents under
// the provided Directory and reconciles the content store against what is
// found on disk.
type SyncContentCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load markdown files from.
	Directory string `json:"directory"`
	// Kind overrides the node kind assigned to ingested documents.
	Kind string `json:"kind,omitempty"`
	// DeleteOrphaned removes stored nodes without matching markdown files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
	// DryRun toggles preview mode to collect sync counts without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SyncContentCommand) Type() string { return syncContentMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.site.sync_content.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// BuildSiteCommand runs a full static build: plan pages from stored nodes,
// render them, and persist the artifacts.
type BuildSiteCommand struct {
	// DryRun renders pages without writing any artifacts.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate implements command.Message; builds carry no required inputs.
func (BuildSiteCommand) Validate() error { return nil }
