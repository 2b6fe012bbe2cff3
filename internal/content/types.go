package content

import (
	"maps"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NodeKind identifies the source a content node was ingested from. The
// pipeline only derives routes for recognized kinds; everything else passes
// through untouched.
type NodeKind string

const (
	// NodeKindMarkdown marks nodes backed by a markdown document.
	NodeKindMarkdown NodeKind = "markdown"
	// NodeKindAsset marks nodes backed by a non-document file (images etc.).
	NodeKindAsset NodeKind = "asset"
	// NodeKindUnknown marks nodes whose source could not be classified.
	NodeKindUnknown NodeKind = "unknown"
)

// DerivedFieldSlug is the key the slug deriver writes the route path under.
const DerivedFieldSlug = "slug"

// Node represents one ingested source file with metadata and derived fields.
// Title, PublishedAt and Draft are denormalized from the front matter so
// queries can sort and filter without unpacking the JSON payload.
type Node struct {
	bun.BaseModel `bun:"table:nodes,alias:n"`

	ID           uuid.UUID              `bun:",pk,type:uuid"            json:"id"`
	Kind         NodeKind               `bun:"kind,notnull"             json:"kind"`
	Path         string                 `bun:"path,notnull,unique"      json:"path"`
	Title        string                 `bun:"title"                    json:"title"`
	PublishedAt  *time.Time             `bun:"published_at,nullzero"    json:"published_at,omitempty"`
	Draft        bool                   `bun:"draft,notnull,default:false" json:"draft"`
	Template     string                 `bun:"template"                 json:"template,omitempty"`
	FrontMatter  interfaces.FrontMatter `bun:"frontmatter,type:jsonb"   json:"frontmatter"`
	Fields       map[string]any         `bun:"fields,type:jsonb"        json:"fields,omitempty"`
	Body         string                 `bun:"body"                     json:"body,omitempty"`
	BodyHTML     string                 `bun:"body_html"                json:"body_html,omitempty"`
	Checksum     string                 `bun:"checksum"                 json:"checksum,omitempty"`
	LastModified time.Time              `bun:"last_modified,nullzero"   json:"last_modified"`
	CreatedAt    time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Slug returns the derived route path and whether it has been computed.
func (n *Node) Slug() (string, bool) {
	if n == nil || len(n.Fields) == 0 {
		return "", false
	}
	value, ok := n.Fields[DerivedFieldSlug].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Date returns the publication timestamp, or the zero time when the front
// matter carries none.
func (n *Node) Date() time.Time {
	if n == nil || n.PublishedAt == nil {
		return time.Time{}
	}
	return *n.PublishedAt
}

func cloneNode(src *Node) *Node {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Fields != nil {
		copied.Fields = make(map[string]any, len(src.Fields))
		maps.Copy(copied.Fields, src.Fields)
	}
	if src.PublishedAt != nil {
		ts := *src.PublishedAt
		copied.PublishedAt = &ts
	}
	if src.FrontMatter.Tags != nil {
		copied.FrontMatter.Tags = append([]string(nil), src.FrontMatter.Tags...)
	}
	if src.FrontMatter.Custom != nil {
		copied.FrontMatter.Custom = make(map[string]any, len(src.FrontMatter.Custom))
		maps.Copy(copied.FrontMatter.Custom, src.FrontMatter.Custom)
	}
	if src.FrontMatter.Raw != nil {
		copied.FrontMatter.Raw = make(map[string]any, len(src.FrontMatter.Raw))
		maps.Copy(copied.FrontMatter.Raw, src.FrontMatter.Raw)
	}
	return &copied
}

// SortField names a node attribute queries can order by.
type SortField string

const (
	// SortByDate orders by the denormalized publication timestamp.
	SortByDate SortField = "date"
	// SortByPath orders by the source-relative file path.
	SortByPath SortField = "path"
)

// SortDirection controls query ordering.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// Query captures the filters a node listing supports: kind, sort field and
// direction, and an optional result cap. A Limit of zero means unbounded.
type Query struct {
	Kind      NodeKind
	SortBy    SortField
	Direction SortDirection
	Limit     int
}
