package crm

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autocrm/autocrm/internal/shared/biztime"
)

var unsafeNameRun = regexp.MustCompile(`[^a-z0-9._-]+`)

// sanitizeName lower-cases s and collapses every run outside [a-z0-9._-] to "-".
func sanitizeName(s string) string {
	s = unsafeNameRun.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-.")
}

// splitName returns the sanitized stem and extension of a client file name.
func splitName(original string) (stem, ext string) {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	rawExt := path.Ext(base)
	stem = sanitizeName(strings.TrimSuffix(base, rawExt))
	ext = sanitizeName(strings.TrimPrefix(rawExt, "."))
	if stem == "" {
		stem = "file"
	}
	return stem, ext
}

// objectName builds a collision-free object name from a client file name:
// "{stem}-{utc timestamp}-{random}.{ext}".
func objectName(original string, now time.Time) string {
	stem, ext := splitName(original)
	name := fmt.Sprintf("%s-%s-%s", stem, biztime.FileStamp(now), uuid.NewString()[:8])
	if ext != "" {
		name += "." + ext
	}
	return name
}

// profileObjectName is "profile-{unix millis}.{ext}".
func profileObjectName(original string, now time.Time) string {
	_, ext := splitName(original)
	name := fmt.Sprintf("profile-%d", biztime.ProfileStamp(now))
	if ext != "" {
		name += "." + ext
	}
	return name
}

func ownedPath(owner, name string) string {
	return owner + "/" + name
}
