package browser

import (
	"slices"
	"testing"
)

func TestCommand(t *testing.T) {
	url := "http://localhost:8501"
	cases := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{url}},
		{"freebsd", "xdg-open", []string{url}},
		{"darwin", "open", []string{url}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", url}},
	}
	for _, tc := range cases {
		name, args := command(tc.goos, url)
		if name != tc.name || !slices.Equal(args, tc.args) {
			t.Errorf("%s: got %s %v, want %s %v", tc.goos, name, args, tc.name, tc.args)
		}
	}
}
