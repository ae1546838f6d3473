package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewObjectName builds a collision-free blob name for an upload, keeping the
// original extension so content types stay derivable. The original filename
// itself is stored on the submission as display metadata only.
func NewObjectName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return uuid.New().String() + ext
}
