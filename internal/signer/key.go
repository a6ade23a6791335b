package signer

import (
	"encoding/hex"
	"path"
	"strings"

	"github.com/google/uuid"
)

// BuildObjectKey derives a collision-resistant key for an uploaded file:
// {prefix}/{random-hex}{extension}. Any path components in filename are
// discarded; only the extension of its sanitized base name survives into
// the key, so callers cannot influence where the object lands.
func BuildObjectKey(filename, prefix string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := path.Ext(base)
	if ext == base {
		// dotfiles have no extension
		ext = ""
	}

	id := uuid.New()
	uniqueID := hex.EncodeToString(id[:])

	normalized := strings.Trim(prefix, "/")
	if normalized != "" {
		normalized += "/"
	}
	return normalized + uniqueID + ext
}
