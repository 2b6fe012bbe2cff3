package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/goliatone/go-blog/internal/content"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var ErrContentServiceRequired = errors.New("markdown importer: content service is required")

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Content content.Service
	Parser  interfaces.MarkdownParser
	Logger  interfaces.Logger
	// Schema optionally constrains front matter; documents that fail
	// validation abort the sync pass.
	Schema map[string]any
}

// Importer syncs parsed markdown documents into the content store. Nodes are
// keyed by source path; unchanged files are detected by checksum and skipped.
type Importer struct {
	content content.Service
	parser  interfaces.MarkdownParser
	logger  interfaces.Logger
	schema  map[string]any
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		content: cfg.Content,
		parser:  cfg.Parser,
		logger:  logger,
		schema:  cfg.Schema,
	}
}

// SyncOptions tune a sync pass.
type SyncOptions struct {
	// Kind assigned to ingested nodes; defaults to markdown.
	Kind content.NodeKind
	// DeleteOrphaned removes stored nodes whose source file disappeared.
	DeleteOrphaned bool
	// DryRun reports what would change without touching the store.
	DryRun bool
}

// SyncResult summarises one sync pass.
type SyncResult struct {
	Created int
	Updated int
	Skipped int
	Deleted int
}

// SyncDocuments ingests all provided documents and optionally deletes
// orphaned nodes. The first failure aborts the pass.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts SyncOptions) (*SyncResult, error) {
	if i.content == nil {
		return nil, ErrContentServiceRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	kind := opts.Kind
	if kind == "" {
		kind = content.NodeKindMarkdown
	}

	result := &SyncResult{}
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		seen[doc.FilePath] = struct{}{}
		if err := i.syncDocument(ctx, doc, kind, opts, result); err != nil {
			return nil, err
		}
	}

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, kind, opts, result); err != nil {
			return nil, err
		}
	}

	i.logger.Info("markdown sync complete",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"deleted", result.Deleted,
	)
	return result, nil
}

func (i *Importer) syncDocument(ctx context.Context, doc *interfaces.Document, kind content.NodeKind, opts SyncOptions, result *SyncResult) error {
	if err := validation.ValidateFrontMatter(i.schema, doc.FrontMatter); err != nil {
		return fmt.Errorf("markdown importer: front matter %s: %w", doc.FilePath, err)
	}

	checksum := hex.EncodeToString(doc.Checksum)

	existing, err := i.content.GetByPath(ctx, doc.FilePath)
	if err != nil && !content.IsNotFound(err) {
		return fmt.Errorf("markdown importer: lookup %s: %w", doc.FilePath, err)
	}

	if existing != nil && existing.Checksum == checksum && checksum != "" {
		result.Skipped++
		return nil
	}

	if opts.DryRun {
		if existing == nil {
			result.Created++
		} else {
			result.Updated++
		}
		return nil
	}

	bodyHTML, err := i.renderBody(doc)
	if err != nil {
		return err
	}

	if existing == nil {
		if _, err := i.content.Create(ctx, content.CreateNodeRequest{
			Kind:         kind,
			Path:         doc.FilePath,
			FrontMatter:  doc.FrontMatter,
			Body:         string(doc.Body),
			BodyHTML:     bodyHTML,
			Checksum:     checksum,
			LastModified: doc.LastModified,
		}); err != nil {
			return fmt.Errorf("markdown importer: create %s: %w", doc.FilePath, err)
		}
		result.Created++
		return nil
	}

	if _, err := i.content.Update(ctx, content.UpdateNodeRequest{
		ID:           existing.ID,
		FrontMatter:  doc.FrontMatter,
		Body:         string(doc.Body),
		BodyHTML:     bodyHTML,
		Checksum:     checksum,
		LastModified: doc.LastModified,
	}); err != nil {
		return fmt.Errorf("markdown importer: update %s: %w", doc.FilePath, err)
	}
	result.Updated++
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, kind content.NodeKind, opts SyncOptions, result *SyncResult) error {
	nodes, err := i.content.Query(ctx, content.Query{Kind: kind, SortBy: content.SortByPath, Direction: content.SortAscending})
	if err != nil {
		return fmt.Errorf("markdown importer: list nodes: %w", err)
	}

	for _, node := range nodes {
		if _, ok := seen[node.Path]; ok {
			continue
		}
		if opts.DryRun {
			result.Deleted++
			continue
		}
		if err := i.content.Delete(ctx, node.ID); err != nil {
			return fmt.Errorf("markdown importer: delete %s: %w", node.Path, err)
		}
		i.logger.Debug("deleted orphaned node", "path", node.Path)
		result.Deleted++
	}
	return nil
}

func (i *Importer) renderBody(doc *interfaces.Document) (string, error) {
	if len(doc.BodyHTML) > 0 {
		return string(doc.BodyHTML), nil
	}
	if i.parser == nil || len(doc.Body) == 0 {
		return "", nil
	}
	html, err := i.parser.Parse(doc.Body)
	if err != nil {
		return "", fmt.Errorf("markdown importer: render %s: %w", doc.FilePath, err)
	}
	return string(html), nil
}
