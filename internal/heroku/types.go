package heroku

import (
	"errors"
	"os"
	"sort"
	"strings"
)

// ErrNotAuthenticated is returned by WhoAmI when the CLI has no session.
var ErrNotAuthenticated = errors.New("not authenticated")

const fallbackBinary = "heroku"

// knownPaths are checked in order before falling back to PATH lookup.
var knownPaths = []string{
	"/opt/homebrew/bin/heroku",
	"/usr/local/bin/heroku",
	"/usr/local/heroku/bin/heroku",
}

// App mirrors one entry of `heroku apps --json`.
type App struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// FindBinary returns the first known install path that exists, or "heroku".
func FindBinary() string {
	return findIn(knownPaths)
}

func findIn(candidates []string) string {
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return fallbackBinary
}

// SearchPath is PATH with the common install directories prepended.
func SearchPath() string {
	dirs := []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin", "/bin"}
	if base := os.Getenv("PATH"); base != "" {
		dirs = append(dirs, base)
	}
	return strings.Join(dirs, string(os.PathListSeparator))
}

// SortApps orders apps by name, case-insensitively.
func SortApps(apps []App) {
	sort.SliceStable(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Name) < strings.ToLower(apps[j].Name)
	})
}
