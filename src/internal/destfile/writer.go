package destfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/maksimkurb/blocklist-sync/src/internal/errors"
	"github.com/maksimkurb/blocklist-sync/src/internal/hashing"
	"github.com/maksimkurb/blocklist-sync/src/internal/log"
	"github.com/maksimkurb/blocklist-sync/src/internal/netlist"
	"github.com/maksimkurb/blocklist-sync/src/internal/utils"
)

// Outcome tells whether the destination was replaced.
type Outcome int

const (
	Unchanged Outcome = iota
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

const defaultFileMode fs.FileMode = 0644

// renameFile is the single step that makes new content visible.
var renameFile = os.Rename

// Writer replaces a destination file only when its content changes.
type Writer struct {
	// TempDir holds temporary files and must be on the destination's
	// filesystem. Empty means the destination's directory, falling back to
	// the system temp dir if no file can be created there.
	TempDir string
	// Stdout receives the content when the destination is "-". Defaults to os.Stdout.
	Stdout io.Writer
}

// WriteSet serializes set and writes it with Write.
func (w *Writer) WriteSet(dest string, set *netlist.PrefixSet) (Outcome, error) {
	return w.Write(dest, set.Bytes())
}

// Write compares content with the current destination and, if they differ,
// replaces the destination through a temp file and a rename. On error the
// destination is left untouched and the temp file is removed.
func (w *Writer) Write(dest string, content []byte) (Outcome, error) {
	if utils.IsStdout(dest) {
		return w.writeStdout(content)
	}

	existing, err := os.ReadFile(dest)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Unchanged, apperrors.NewIOError(fmt.Sprintf("failed to read destination %s", dest), err)
	}

	if bytes.Equal(existing, content) {
		log.Infof("Destination %s is up to date (%d bytes, MD5 %s)", dest, len(content), hashing.Sum(content))
		return Unchanged, nil
	}

	if err := w.replace(dest, content); err != nil {
		return Unchanged, err
	}

	log.Infof("Destination %s updated (%d bytes, MD5 %s)", dest, len(content), hashing.Sum(content))
	return Updated, nil
}

func (w *Writer) writeStdout(content []byte) (Outcome, error) {
	out := w.Stdout
	if out == nil {
		out = os.Stdout
	}
	if _, err := out.Write(content); err != nil {
		return Unchanged, apperrors.NewIOError("failed to write to stdout", err)
	}
	return Updated, nil
}

func (w *Writer) replace(dest string, content []byte) error {
	tmp, err := w.createTemp(dest)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	log.Debugf("Writing %d bytes to temp file %s", len(content), tmpName)

	renamed := false
	defer func() {
		if renamed {
			return
		}
		_ = tmp.Close()
		if removeErr := os.Remove(tmpName); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			log.Warnf("Failed to remove temp file %s: %v", tmpName, removeErr)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to write temp file %s", tmpName), err)
	}
	if err := tmp.Chmod(destinationMode(dest)); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to set permissions on %s", tmpName), err)
	}
	copyOwner(dest, tmp)

	if err := tmp.Sync(); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to sync temp file %s", tmpName), err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to close temp file %s", tmpName), err)
	}

	destDir := filepath.Dir(dest)
	if same, err := utils.SameDevice(filepath.Dir(tmpName), destDir); err == nil && !same {
		log.Warnf("Temp file %s is not on the filesystem of %s, the rename will fail", tmpName, dest)
	}

	if err := renameFile(tmpName, dest); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("failed to rename %s to %s", tmpName, dest), err)
	}
	renamed = true

	if err := syncDir(destDir); err != nil {
		log.Warnf("Failed to sync directory %s: %v", destDir, err)
	}

	return nil
}

func (w *Writer) createTemp(dest string) (*os.File, error) {
	pattern := "." + filepath.Base(dest) + ".*.tmp"

	if w.TempDir != "" {
		tmp, err := os.CreateTemp(w.TempDir, pattern)
		if err != nil {
			return nil, apperrors.NewIOError(fmt.Sprintf("failed to create temp file in %s", w.TempDir), err)
		}
		return tmp, nil
	}

	destDir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(destDir, pattern)
	if err == nil {
		return tmp, nil
	}
	log.Warnf("Failed to create temp file in %s, falling back to %s: %v", destDir, os.TempDir(), err)

	tmp, err = os.CreateTemp("", pattern)
	if err != nil {
		return nil, apperrors.NewIOError("failed to create temp file", err)
	}
	return tmp, nil
}

// destinationMode keeps the permission bits of an existing destination.
func destinationMode(dest string) fs.FileMode {
	info, err := os.Stat(dest)
	if err != nil {
		return defaultFileMode
	}
	return info.Mode().Perm()
}

// copyOwner gives tmp the owner and group of an existing destination. Only
// privileged runs can change the owner, so failures are warnings.
func copyOwner(dest string, tmp *os.File) {
	uid, gid, err := utils.Owner(dest)
	if err != nil {
		return
	}
	if uid == os.Getuid() && gid == os.Getgid() {
		return
	}
	if err := tmp.Chown(uid, gid); err != nil {
		log.Warnf("Failed to copy owner %d:%d of %s: %v", uid, gid, dest, err)
	}
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(d)
	return d.Sync()
}
