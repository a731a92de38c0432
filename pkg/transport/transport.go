// Package transport persists generated CSV text as a downloadable file
// through a two-tier strategy: a confirmable interactive save dialog when
// the environment offers one, otherwise a best-effort drop into a download
// directory.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// utf8BOM is prepended to saved content so spreadsheet consumers detect
// UTF-8 correctly.
const utf8BOM = "\xEF\xBB\xBF"

// CSVFileType is the file-type filter suggested to save dialogs for CSV
// content.
var CSVFileType = FileType{
	Description: "CSV file",
	MIME:        "text/csv; charset=utf-8",
	Extensions:  []string{".csv"},
}

// FileType describes the kind of file a dialog should offer to save.
type FileType struct {
	Description string
	MIME        string
	Extensions  []string
}

// Sentinel errors a Dialog uses to report why it produced no destination.
var (
	// ErrCanceled means the user explicitly dismissed the dialog. This is a
	// genuine decision, not an environment limitation, and must not trigger
	// the fallback path.
	ErrCanceled = errors.New("transport: save dialog canceled")

	// ErrNotSupported means the environment cannot present a dialog at all.
	ErrNotSupported = errors.New("transport: save dialog not supported")
)

// Dialog is the optional native save capability of the host environment.
// Open presents the dialog with a suggested file name and type filter and
// returns a writer to the destination the user confirmed.
type Dialog interface {
	Open(ctx context.Context, suggestedName string, fileType FileType) (io.WriteCloser, error)
}

// Logger receives diagnostic messages from the transport. A nil Logger
// means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Downloader saves content using the two-tier strategy. The zero value
// (no dialog, current directory) is usable.
type Downloader struct {
	// Dialog is the confirmable save capability; nil means the environment
	// does not offer one and only the fallback path is attempted.
	Dialog Dialog

	// Dir is the fallback download directory. Empty means the current
	// working directory.
	Dir string

	// Logger receives best-effort diagnostics; nil is silent.
	Logger Logger
}

// Download persists content under fileName. The result is a best-known
// success signal, never an error:
//
//   - true: either the dialog path confirmed the write, or the fallback
//     completed without an observable failure. On the fallback path this is
//     not a hard delivery guarantee.
//   - false: the user canceled the dialog (or was denied permission), or
//     even the fallback failed.
//
// Cancellation and permission denial are genuine decisions and terminate
// without a fallback. Any other dialog failure (unsupported, write error)
// is swallowed and the fallback runs.
func (d *Downloader) Download(ctx context.Context, content, fileName string) bool {
	payload := []byte(utf8BOM + content)

	if d.Dialog != nil {
		err := d.saveViaDialog(ctx, payload, fileName)
		if err == nil {
			return true
		}
		if errors.Is(err, ErrCanceled) || errors.Is(err, fs.ErrPermission) {
			d.logInfo("Save canceled")
			return false
		}
		d.logWarn("Save dialog unavailable (%v), falling back to download directory", err)
	}

	path, err := d.saveToDir(payload, fileName)
	if err != nil {
		d.logError("Download failed: %v", err)
		return false
	}
	d.logInfo("Saved to %s", path)
	return true
}

// saveViaDialog runs the confirmable path: open dialog, write, close, in
// strict sequence. Any step failing aborts the whole path.
func (d *Downloader) saveViaDialog(ctx context.Context, payload []byte, fileName string) error {
	w, err := d.Dialog.Open(ctx, fileName, CSVFileType)
	if err != nil {
		return err
	}

	if _, err := w.Write(payload); err != nil {
		w.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// saveToDir writes the payload into the download directory under a
// collision-free name and returns the path written.
func (d *Downloader) saveToDir(payload []byte, fileName string) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, uniqueName(fileName))
	}

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// uniqueName derives a name that will not collide with an existing file by
// inserting a random suffix before the extension.
func uniqueName(fileName string) string {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)
}

func (d *Downloader) logInfo(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Infof(format, args...)
	}
}

func (d *Downloader) logWarn(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Warnf(format, args...)
	}
}

func (d *Downloader) logError(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Errorf(format, args...)
	}
}
