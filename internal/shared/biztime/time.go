// Package biztime keeps every stored and transported timestamp in UTC.
package biztime

import "time"

// FileStampLayout orders lexically by time and is safe inside object paths.
const FileStampLayout = "20060102T150405.000000000Z"

// now is replaced in tests.
var now = time.Now

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return now().UTC()
}

// ToUTC converts any time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FileStamp formats t for use in an object name.
func FileStamp(t time.Time) string {
	return t.UTC().Format(FileStampLayout)
}

// ProfileStamp is the millisecond epoch used in profile picture names.
func ProfileStamp(t time.Time) int64 {
	return t.UTC().UnixMilli()
}
