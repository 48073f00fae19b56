// Package browser opens URLs in the operator's default browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open starts the platform opener for url and does not wait for it.
func Open(url string) error {
	name, args := command(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

func command(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	}
	return "xdg-open", []string{url}
}
