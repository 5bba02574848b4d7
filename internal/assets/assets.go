// Package assets holds the embedded file system with the report templates,
// registered once by main.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

var efs *embed.FS

func GetData() *embed.FS {
	return efs
}

func UpdateData(d *embed.FS) {
	efs = d
}

// ReadFile reads a file from the registered file system.
func ReadFile(name string) ([]byte, error) {
	if efs == nil {
		return nil, fmt.Errorf("no embedded data registered, can't read %s", name)
	}
	return efs.ReadFile(name)
}

// GetAllFilenames return all file names from an path in embeded EFS.
func GetAllFilenames(efs *embed.FS, path string) (files []string, err error) {
	if err := fs.WalkDir(efs, path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		files = append(files, path)

		return nil
	}); err != nil {
		return nil, err
	}

	return files, nil
}
