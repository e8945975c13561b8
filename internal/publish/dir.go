// SPDX-License-Identifier: MIT
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirTarget writes files below a local directory
type DirTarget struct {
	Root string
}

// NewDirTarget creates the root directory if needed
func NewDirTarget(root string) (*DirTarget, error) {
	if root == "" {
		return nil, fmt.Errorf("publish directory is empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create publish directory: %w", err)
	}
	return &DirTarget{Root: root}, nil
}

func (d *DirTarget) Kind() string { return "dir" }

func (d *DirTarget) String() string { return "dir:" + d.Root }

// Put writes name atomically: readers never see a half-written file
func (d *DirTarget) Put(ctx context.Context, name string, body []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("refusing to write outside publish directory: %s", name)
	}

	full := filepath.Join(d.Root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".publish-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), full)
}
