package utils

import (
	"fmt"
	"path"
	"strings"

	"clinicdesk-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateFileObjectKey mints a bucket key under the owning patient's
// namespace. The original filename is kept for operators; the uuid prefix
// prevents collisions and overwrite-by-upload.
func GenerateFileObjectKey(patientID, filename string) string {
	base := path.Base(strings.TrimSpace(filename))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s/%s_%s", constvars.FileObjectKeyPrefix, patientID, uuid.NewString(), base)
}
