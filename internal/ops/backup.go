// Package ops backs up and restores the taskpad data directory: the tasks
// snapshot for the file backend, or the SQLite database. Archives are plain
// tar.gz files holding paths relative to the data directory root, so a
// restore can target any directory.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BackupDataDir writes a tar.gz snapshot of everything under dataDir to
// archivePath, creating parent directories for the archive as needed.
func BackupDataDir(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return fmt.Errorf("data dir and archive path are required")
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		return fmt.Errorf("backup %s: %w", dataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("backup %s: not a directory", dataDir)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return fmt.Errorf("backup %s: %w", dataDir, err)
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("backup %s: %w", dataDir, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	walkErr := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dataDir {
			return nil
		}
		// Symlinks are skipped so a restored tree never points outside itself.
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		return writeEntry(tw, dataDir, path, d)
	})
	if walkErr != nil {
		return fmt.Errorf("backup %s: %w", dataDir, walkErr)
	}
	return nil
}

func writeEntry(tw *tar.Writer, root, path string, d fs.DirEntry) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	info, err := d.Info()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	if info.IsDir() {
		if !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}
		return tw.WriteHeader(hdr)
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(tw, src)
	return err
}

// RestoreDataDir unpacks an archive produced by BackupDataDir into targetDir,
// creating it if needed. Entry names are checked before extraction; an
// archive that tries to climb out of the target directory is rejected whole.
func RestoreDataDir(archivePath, targetDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return fmt.Errorf("archive path and target dir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("restore into %s: %w", targetDir, err)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("restore %s: %w", archivePath, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("restore %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("restore %s: %w", archivePath, err)
		}
		if err := extractEntry(tr, hdr, targetDir); err != nil {
			return fmt.Errorf("restore %s: %w", archivePath, err)
		}
	}
}

func extractEntry(tr *tar.Reader, hdr *tar.Header, targetDir string) error {
	rel, err := safeEntryName(hdr.Name)
	if err != nil {
		return err
	}
	out := filepath.Join(targetDir, rel)

	switch hdr.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(out, fs.FileMode(hdr.Mode))
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		dst, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fs.FileMode(hdr.Mode))
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, tr); err != nil {
			_ = dst.Close()
			return err
		}
		return dst.Close()
	default:
		// Anything besides files and directories never ends up in our own
		// archives; foreign entry types are ignored rather than failed on.
		return nil
	}
}

// safeEntryName normalizes an archive entry name and rejects absolute paths
// and parent-directory escapes.
func safeEntryName(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "" || name == "." {
		return "", fmt.Errorf("empty archive entry name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute archive entry name %q", name)
	}
	if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return name, nil
}

// DirDigest hashes every file under root, names included, into one hex
// digest. Two directory trees with identical contents produce identical
// digests; the restore drill compares these instead of walking twice.
func DirDigest(root string) (string, error) {
	root = filepath.Clean(root)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
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
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", root, err)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, rel := range files {
		io.WriteString(h, rel)
		io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", fmt.Errorf("digest %s: %w", root, err)
		}
		h.Write(b)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
