package catalog

import "regexp"

var platformPatterns = []struct {
	re *regexp.Regexp
	p  Platform
}{
	{regexp.MustCompile(`(?i)\b(windows|win)\b`), PlatformWindows},
	{regexp.MustCompile(`(?i)\b(macos|mac|apple)\b`), PlatformMacOS},
	{regexp.MustCompile(`(?i)\b(linux|ubuntu|debian)\b`), PlatformLinux},
	{regexp.MustCompile(`(?i)\b(android)\b`), PlatformAndroid},
}

// DetectPlatform finds the target platform in free text, falling back to
// the caller-supplied OS/user-agent hint only when the text names none.
// Text wins over the hint; the two are never combined.
func DetectPlatform(text, hint string) (Platform, bool) {
	for _, pp := range platformPatterns {
		if pp.re.MatchString(text) {
			return pp.p, true
		}
	}
	if hint == "" {
		return "", false
	}
	for _, pp := range platformPatterns {
		if pp.re.MatchString(hint) {
			return pp.p, true
		}
	}
	return "", false
}
