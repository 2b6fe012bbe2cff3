package content

import (
	"errors"
	"fmt"
)

var (
	ErrPathRequired      = errors.New("content: node path is required")
	ErrKindRequired      = errors.New("content: node kind is required")
	ErrNodeExists        = errors.New("content: node already exists for path")
	ErrFieldKeyRequired  = errors.New("content: derived field key is required")
	ErrSlugImmutable     = errors.New("content: derived slug cannot be overwritten")
	ErrKindNotRecognized = errors.New("content: node kind is not recognized for slug derivation")
	ErrSegmentInvalid    = errors.New("content: path segment is not a canonical slug")
)

// NodeNotFoundError indicates a node lookup by id or path failed.
type NodeNotFoundError struct {
	Key string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("content: node %s not found", e.Key)
}

// IsNotFound reports whether err represents a missing node.
func IsNotFound(err error) bool {
	var notFound *NodeNotFoundError
	return errors.As(err, &notFound)
}
