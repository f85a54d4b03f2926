package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node, group and document identifiers.
const maxIDLength = 256

// ValidateNodeID validates a node identifier supplied by a caller.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	return validateID(ErrCodeInvalidNodeID, "node id", id)
}

// ValidateGroupID validates a group identifier. Group ids share the node id rules.
func ValidateGroupID(id string) error {
	return validateID(ErrCodeInvalidGroupID, "group id", id)
}

// ValidateDocumentID validates a document id used as a storage key.
// On top of the generic rules it rejects path separators so that file
// backends cannot escape their directory.
func ValidateDocumentID(id string) error {
	if err := validateID(ErrCodeInvalidInput, "document id", id); err != nil {
		return err
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "document id contains invalid characters: %q", id)
	}
	return nil
}

func validateID(code Code, what, id string) error {
	if id == "" {
		return New(code, "%s cannot be empty", what)
	}
	if len(id) > maxIDLength {
		return New(code, "%s too long (max %d characters)", what, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(code, "%s contains invalid control characters", what)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
