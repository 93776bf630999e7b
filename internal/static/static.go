// Package static embeds the sample hook scripts into the binary and copies
// them to the data directory
package static

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/tally/internal/pathutil"
)

const (
	filesDir = "files"
)

//go:embed files/*
var embeddedFiles embed.FS

// copyFiles writes every file under root in fsys to the path returned by
// dest. Files that already exist are left alone so user edits survive.
func copyFiles(
	fsys fs.FS,
	root string,
	dest func(rel string) (string, error),
) error {
	return fs.WalkDir(
		fsys,
		root,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(root, filepath.FromSlash(p))
			if err != nil {
				return err
			}

			destPath, err := dest(rel)
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); !os.IsNotExist(err) {
				return err
			}

			b, err := fs.ReadFile(fsys, p)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return err
			}

			perm := os.FileMode(0o644)
			if path.Ext(p) == ".sh" {
				perm = 0o755
			}

			return os.WriteFile(destPath, b, perm)
		},
	)
}

// Install copies the sample hooks to the tally data directory.
func Install() error {
	return copyFiles(embeddedFiles, filesDir, func(rel string) (string, error) {
		return xdg.DataFile(filepath.Join(pathutil.Dir(), rel))
	})
}
