package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
)

//go:embed static
var embedded embed.FS

// Static returns the landing page and its assets, read from dir when set
// and from the copy built into the binary otherwise.
func Static(dir string) (fs.FS, error) {
	if dir != "" {
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static files: %w", err)
	}
	return sub, nil
}

// FileServer serves files from fsys with standard file-server semantics:
// "/" maps to index.html and missing paths are 404.
func FileServer(fsys fs.FS) http.Handler {
	return http.FileServer(http.FS(fsys))
}
