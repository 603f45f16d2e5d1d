package catalog

import "testing"

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		text, hint string
		want       Platform
		ok         bool
	}{
		{"get me chrome for windows", "", PlatformWindows, true},
		{"chrome", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", PlatformMacOS, true},
		{"firefox on ubuntu please", "", PlatformLinux, true},
		{"whatsapp for android", "", PlatformAndroid, true},
		// Text wins over the hint, never both.
		{"vlc for win", "Mozilla/5.0 (X11; Linux x86_64)", PlatformWindows, true},
		{"chrome", "", "", false},
	}
	for _, c := range cases {
		got, ok := DetectPlatform(c.text, c.hint)
		if ok != c.ok || got != c.want {
			t.Fatalf("DetectPlatform(%q, %q) = (%q, %v), want (%q, %v)", c.text, c.hint, got, ok, c.want, c.ok)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	if p, ok := ParsePlatform(" Windows "); !ok || p != PlatformWindows {
		t.Fatalf("got (%q, %v)", p, ok)
	}
	if _, ok := ParsePlatform("amiga"); ok {
		t.Fatalf("invalid platform must be discarded")
	}
}
