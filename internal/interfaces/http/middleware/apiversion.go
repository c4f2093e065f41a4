package middleware

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAPIVersion     = "X-API-Version"
	ContextKeyAPIVersion = "api_version"

	CurrentAPIVersion = 1
	MinAPIVersion     = 1
)

var acceptVersionRegex = regexp.MustCompile(`application/vnd\.autocrm\.v(\d+)\+json`)

// APIVersion resolves the version a client asked for, from X-API-Version or
// an "application/vnd.autocrm.vN+json" Accept header, and echoes it back.
// Unknown or missing versions resolve to CurrentAPIVersion.
func APIVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		version := resolveAPIVersion(c)
		c.Set(ContextKeyAPIVersion, version)
		c.Header(HeaderAPIVersion, strconv.Itoa(version))
		c.Next()
	}
}

func GetAPIVersion(c *gin.Context) int {
	if v, ok := c.Get(ContextKeyAPIVersion); ok {
		if ver, ok := v.(int); ok {
			return ver
		}
	}
	return CurrentAPIVersion
}

func resolveAPIVersion(c *gin.Context) int {
	if v, ok := supportedVersion(c.GetHeader(HeaderAPIVersion)); ok {
		return v
	}
	if m := acceptVersionRegex.FindStringSubmatch(c.GetHeader("Accept")); len(m) == 2 {
		if v, ok := supportedVersion(m[1]); ok {
			return v
		}
	}
	return CurrentAPIVersion
}

func supportedVersion(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < MinAPIVersion || v > CurrentAPIVersion {
		return 0, false
	}
	return v, true
}
