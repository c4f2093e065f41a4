package crm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		in       string
		wantStem string
		wantExt  string
	}{
		{in: "Report Q1.PDF", wantStem: "report-q1", wantExt: "pdf"},
		{in: `C:\Users\me\résumé (final).docx`, wantStem: "r-sum-final", wantExt: "docx"},
		{in: "archive.tar.gz", wantStem: "archive.tar", wantExt: "gz"},
		{in: "README", wantStem: "readme", wantExt: ""},
		{in: "???.png", wantStem: "file", wantExt: "png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			stem, ext := splitName(tt.in)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestObjectNameIsUnique(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := objectName("Scan.JPG", now)
	b := objectName("Scan.JPG", now)

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "scan-"), a)
	assert.True(t, strings.HasSuffix(a, ".jpg"), a)
}

func TestProfileObjectName(t *testing.T) {
	now := time.UnixMilli(1709294400123).UTC()
	assert.Equal(t, "profile-1709294400123.png", profileObjectName("Avatar.PNG", now))
	assert.Equal(t, "profile-1709294400123", profileObjectName("avatar", now))
}
