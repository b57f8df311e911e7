package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// start launches the platform opener. Replaced in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open shows the meal sheet in the system browser. Only http and https URLs are opened.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}

	switch runtime.GOOS {
	case "darwin":
		return start("open", rawURL)
	case "windows":
		// rundll32 avoids cmd /c start shell interpretation
		return start("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return start("xdg-open", rawURL)
	}
}
