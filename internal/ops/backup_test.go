package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return got
}

func TestBackupRestoreDataDir_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")

	// The shapes both storage backends leave behind.
	files := map[string]string{
		"tasks.json": `[{"id":"t1","date":"2026-03-06","description":"plan sprint","status":"pending"},` +
			`{"id":"t2","date":"2026-03-05","description":"review prs","link":"https://github.com/pulls","status":"completed"}]`,
		"taskpad.db":           "sqlite-bytes-stand-in",
		"archive/old-run.json": `[]`,
	}
	writeTree(t, src, files)

	archive := filepath.Join(t.TempDir(), "taskpad.tar.gz")
	if err := BackupDataDir(src, archive); err != nil {
		t.Fatalf("backup: %v", err)
	}
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	target := filepath.Join(t.TempDir(), "restored")
	if err := RestoreDataDir(archive, target); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if got := readTree(t, target); !reflect.DeepEqual(files, got) {
		t.Fatalf("restored tree mismatch:\nwant=%v\ngot=%v", files, got)
	}
}

func TestBackupDataDir_RejectsMissingSource(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "out.tar.gz")
	if err := BackupDataDir(filepath.Join(t.TempDir(), "nope"), archive); err == nil {
		t.Fatalf("expected error for missing data dir")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := BackupDataDir(file, archive); err == nil {
		t.Fatalf("expected error when source is a file")
	}
}

func TestRestoreDataDir_RejectsPathTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bad.tar.gz")
	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	body := "escaped"
	if err := tw.WriteHeader(&tar.Header{
		Name:     "../escape.json",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(body)),
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write([]byte(body)); err != nil {
		t.Fatalf("write body: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if err := RestoreDataDir(archive, filepath.Join(t.TempDir(), "out")); err == nil {
		t.Fatalf("expected restore to reject the traversal entry")
	}
}

func TestDirDigest(t *testing.T) {
	a := filepath.Join(t.TempDir(), "a")
	b := filepath.Join(t.TempDir(), "b")
	tree := map[string]string{
		"tasks.json":   `[{"id":"t1"}]`,
		"sub/note.txt": "same",
	}
	writeTree(t, a, tree)
	writeTree(t, b, tree)

	da, err := DirDigest(a)
	if err != nil {
		t.Fatalf("digest a: %v", err)
	}
	db, err := DirDigest(b)
	if err != nil {
		t.Fatalf("digest b: %v", err)
	}
	if da != db {
		t.Fatalf("identical trees must digest equal: %s vs %s", da, db)
	}

	if err := os.WriteFile(filepath.Join(b, "tasks.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatalf("mutate b: %v", err)
	}
	db2, err := DirDigest(b)
	if err != nil {
		t.Fatalf("digest mutated b: %v", err)
	}
	if da == db2 {
		t.Fatalf("changed content must change the digest")
	}
}
