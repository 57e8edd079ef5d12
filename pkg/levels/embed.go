package levels

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DefaultLevel is the level a session starts in.
const DefaultLevel = "lobby"

func cleanLevelPath(name string) string {
	name = path.Base(strings.TrimSpace(name))
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return name
}

// Names lists the embedded levels, sorted.
func Names() []string {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
