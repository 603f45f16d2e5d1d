package catalog

import "strings"

// Platform identifies one of the operating systems the catalog tracks.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformMacOS   Platform = "macos"
	PlatformLinux   Platform = "linux"
	PlatformAndroid Platform = "android"
)

// ParsePlatform validates a raw token against the fixed platform set.
// Unknown tokens yield ok=false; callers must treat that as absent.
func ParsePlatform(raw string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(raw))) {
	case PlatformWindows:
		return PlatformWindows, true
	case PlatformMacOS:
		return PlatformMacOS, true
	case PlatformLinux:
		return PlatformLinux, true
	case PlatformAndroid:
		return PlatformAndroid, true
	}
	return "", false
}

// Item is one verified catalog entry. Items are immutable once loaded;
// a refresh replaces the whole snapshot.
type Item struct {
	Name            string              `json:"name"`
	DownloadPattern string              `json:"download_pattern"`
	OSCompatibility map[Platform]string `json:"os_compatibility"`
}

// URLFor resolves the verified download URL for a platform. A per-platform
// override in OSCompatibility wins; otherwise the generic pattern is used
// when the platform is listed at all.
func (it Item) URLFor(p Platform) (string, bool) {
	if it.OSCompatibility == nil {
		return "", false
	}
	u, ok := it.OSCompatibility[p]
	if !ok {
		return "", false
	}
	if strings.TrimSpace(u) == "" {
		u = it.DownloadPattern
	}
	if strings.TrimSpace(u) == "" {
		return "", false
	}
	return u, true
}
