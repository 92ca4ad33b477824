package testutil

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// TestingT is an interface that matches the subset of testing.T methods we need.
// This allows for easier testing of the test helpers themselves.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// FsSnapshot is the content of every file and directory of a filesystem at a point in time.
// Directories are stored with nil content.
type FsSnapshot struct {
	entries map[string][]byte
}

// Paths returns the snapshotted paths in lexical order.
func (s *FsSnapshot) Paths() []string {
	paths := lo.Keys(s.entries)
	sort.Strings(paths)
	return paths
}

// SnapshotFs walks fs from its root and records every entry.
func SnapshotFs(fs afero.Fs) (*FsSnapshot, error) {
	snapshot := &FsSnapshot{entries: make(map[string][]byte)}

	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			snapshot.entries[path] = nil
			return nil
		}

		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		snapshot.entries[path] = content
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// AssertFsUnchanged fails the test if any entry was added, removed or rewritten
// since the snapshot was taken.
func AssertFsUnchanged(t TestingT, fs afero.Fs, snapshot *FsSnapshot) {
	t.Helper()

	if snapshot == nil {
		t.Fatal("snapshot is nil")
		return
	}

	current, err := SnapshotFs(fs)
	if err != nil {
		t.Fatalf("failed to snapshot filesystem: %v", err)
		return
	}

	var changes []string
	for path, content := range current.entries {
		before, existed := snapshot.entries[path]
		switch {
		case !existed:
			changes = append(changes, "added "+path)
		case !bytes.Equal(before, content):
			changes = append(changes, "modified "+path)
		}
	}
	for path := range snapshot.entries {
		if _, ok := current.entries[path]; !ok {
			changes = append(changes, "removed "+path)
		}
	}

	if len(changes) > 0 {
		sort.Strings(changes)
		t.Errorf("filesystem changed:\n%s", strings.Join(changes, "\n"))
	}
}
