// taskpad-ops snapshots and restores the taskpad data directory. The drill
// subcommand proves a backup actually restores by comparing tree digests.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jlmedgue/taskpad/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "backup":
		err = cmdBackup(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "drill":
		err = cmdDrill(os.Args[2:])
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func cmdBackup(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to the taskpad data directory")
	out := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*out = filepath.Join("backups", "taskpad-"+ts+".tar.gz")
	}
	if err := ops.BackupDataDir(*dataDir, *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

func cmdRestore(args []string) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	archive := fs.String("archive", "", "backup archive to restore (.tar.gz)")
	target := fs.String("target-dir", "data-restored", "directory to restore into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	return ops.RestoreDataDir(*archive, *target)
}

// cmdDrill backs up the live data directory, restores the archive next to it,
// and fails unless both trees digest identically.
func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	dataDir := fs.String("data-dir", "data", "path to the taskpad data directory")
	workDir := fs.String("work-dir", os.TempDir(), "workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*workDir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format("20060102T150405Z")
	archive := filepath.Join(*workDir, "taskpad-drill-"+ts+".tar.gz")
	restored := filepath.Join(*workDir, "taskpad-drill-restore-"+ts)

	if err := ops.BackupDataDir(*dataDir, archive); err != nil {
		return err
	}
	if err := ops.RestoreDataDir(archive, restored); err != nil {
		return err
	}

	want, err := ops.DirDigest(*dataDir)
	if err != nil {
		return err
	}
	got, err := ops.DirDigest(restored)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("digest mismatch after restore: data=%s restored=%s", want, got)
	}

	fmt.Println("backup:", archive)
	fmt.Println("restored:", restored)
	fmt.Println("digest:", want)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  taskpad-ops backup  --data-dir data --out backups/taskpad.tar.gz")
	fmt.Println("  taskpad-ops restore --archive backups/taskpad.tar.gz --target-dir data-restored")
	fmt.Println("  taskpad-ops drill   --data-dir data --work-dir /tmp")
}
