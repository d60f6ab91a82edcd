package cli

import (
	"embed"
	"io/fs"
)

//go:embed help/*.md
var helpFiles embed.FS

// helpTopics is the tree of help topic documents
func helpTopics() fs.FS {
	sub, err := fs.Sub(helpFiles, "help")
	if err != nil {
		panic(err)
	}
	return sub
}
