package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NodeUUID returns the stable identifier for a content node discovered at the
// given source-relative path. Re-ingesting the same file always yields the
// same node identity.
func NodeUUID(path string) uuid.UUID {
	return UUID("go-blog:node:" + strings.TrimSpace(path))
}

// PageUUID returns the stable identifier for a registered page route.
func PageUUID(route string) uuid.UUID {
	return UUID("go-blog:page:" + strings.TrimSpace(route))
}
