// Package tree renders the included paths of an aggregation as a directory tree.
package tree

import (
	"path"

	"github.com/disiqueira/gotree/v3"
)

// FileTree collects slash-separated paths under a single root label.
type FileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

// New returns an empty FileTree labelled rootLabel.
func New(rootLabel string) FileTree {
	return FileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t FileTree) getDir(dirPath string) (dir gotree.Tree) {
	if dirPath == "." || dirPath == "/" || dirPath == "" {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentDir := t.getDir(path.Dir(dirPath))
		dir = parentDir.Add(path.Base(dirPath) + "/")
		t.dirs[dirPath] = dir
	}
	return
}

// Insert adds a file path. Missing parent directories are created in
// the order they are first seen.
func (t FileTree) Insert(filePath string) {
	dir := t.getDir(path.Dir(filePath))
	dir.Add(path.Base(filePath))
}

// Render returns the tree as text.
func (t FileTree) Render() string {
	return t.tree.Print()
}

// Render builds and renders a tree of paths in one step.
func Render(rootLabel string, paths []string) string {
	t := New(rootLabel)
	for _, p := range paths {
		t.Insert(p)
	}
	return t.Render()
}
