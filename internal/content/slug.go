package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

// HierarchyResolver maps a node to its location in the source tree: the
// ancestor directory segments (content root first) and the file base name.
// The default implementation reads the node's source-relative path; hosts
// with a different source layout can supply their own.
type HierarchyResolver interface {
	Locate(node *Node) (dirs []string, base string, err error)
}

// NewPathResolver returns the default resolver backed by Node.Path.
func NewPathResolver() HierarchyResolver {
	return pathResolver{}
}

type pathResolver struct{}

func (pathResolver) Locate(node *Node) ([]string, string, error) {
	if node == nil || strings.TrimSpace(node.Path) == "" {
		return nil, "", ErrPathRequired
	}
	clean := path.Clean(strings.Trim(strings.ReplaceAll(node.Path, "\\", "/"), "/"))
	dir, base := path.Split(clean)
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return nil, base, nil
	}
	return strings.Split(dir, "/"), base, nil
}

// SlugDeriver computes the canonical route path for a node from its position
// in the source tree. Derivation is a pure function of location: the same
// location always yields the same slug, and distinct locations never collide.
type SlugDeriver struct {
	resolver   HierarchyResolver
	recognized map[NodeKind]struct{}
}

// DeriverOption configures a SlugDeriver.
type DeriverOption func(*SlugDeriver)

// WithResolver overrides the hierarchy resolver.
func WithResolver(resolver HierarchyResolver) DeriverOption {
	return func(d *SlugDeriver) {
		if resolver != nil {
			d.resolver = resolver
		}
	}
}

// WithRecognizedKinds replaces the set of node kinds the deriver handles.
// Kinds outside the set are left completely untouched by the ingestion hook.
func WithRecognizedKinds(kinds ...NodeKind) DeriverOption {
	return func(d *SlugDeriver) {
		d.recognized = make(map[NodeKind]struct{}, len(kinds))
		for _, kind := range kinds {
			d.recognized[kind] = struct{}{}
		}
	}
}

// NewSlugDeriver constructs a deriver that recognizes markdown nodes unless
// configured otherwise.
func NewSlugDeriver(opts ...DeriverOption) *SlugDeriver {
	d := &SlugDeriver{
		resolver: NewPathResolver(),
		recognized: map[NodeKind]struct{}{
			NodeKindMarkdown: {},
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Recognizes reports whether the deriver handles nodes of the given kind.
func (d *SlugDeriver) Recognizes(kind NodeKind) bool {
	_, ok := d.recognized[kind]
	return ok
}

// Derive computes the route path for a recognized node. A file named
// index.md maps to its directory (`blog/my-post/index.md` → `/blog/my-post/`);
// any other file contributes its own name as the final segment
// (`blog/notes.md` → `/blog/notes/`). The result always carries a leading and
// trailing separator.
//
// Segments must already be in canonical slug form. Rewriting "Foo Bar" to
// "foo-bar" would let distinct source locations collide, so non-canonical
// segments fail derivation instead.
func (d *SlugDeriver) Derive(node *Node) (string, error) {
	if node == nil {
		return "", ErrPathRequired
	}
	if !d.Recognizes(node.Kind) {
		return "", fmt.Errorf("%w: %s", ErrKindNotRecognized, node.Kind)
	}

	dirs, base, err := d.resolver.Locate(node)
	if err != nil {
		return "", err
	}

	segments := append([]string(nil), dirs...)
	if name := strippedBaseName(base); name != "index" && name != "" {
		segments = append(segments, name)
	}

	if len(segments) == 0 {
		return "/", nil
	}

	for _, segment := range segments {
		canonical, err := slug.Normalize(segment)
		if err != nil {
			return "", fmt.Errorf("content: normalize segment %q: %w", segment, err)
		}
		if canonical == "" || canonical != segment {
			return "", fmt.Errorf("%w: %q", ErrSegmentInvalid, segment)
		}
	}

	return "/" + strings.Join(segments, "/") + "/", nil
}

func strippedBaseName(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
