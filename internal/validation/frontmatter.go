package validation

import "github.com/goliatone/go-blog/pkg/interfaces"

// ValidateFrontMatter checks a document's front matter against a schema.
// The raw key/value mapping is validated, so typed and custom keys are
// covered by the same schema. A nil or empty schema accepts everything.
func ValidateFrontMatter(schema map[string]any, fm interfaces.FrontMatter) error {
	if len(schema) == 0 {
		return nil
	}
	return ValidatePayload(schema, fm.Raw)
}
