package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDialog is an in-memory Dialog for exercising the confirmable path.
type fakeDialog struct {
	openErr  error
	writeErr error
	closeErr error

	buf    bytes.Buffer
	opened bool
	closed bool
}

func (f *fakeDialog) Open(_ context.Context, _ string, _ FileType) (io.WriteCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened = true
	return &fakeWriter{d: f}, nil
}

type fakeWriter struct {
	d *fakeDialog
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	if w.d.writeErr != nil {
		return 0, w.d.writeErr
	}
	return w.d.buf.Write(p)
}

func (w *fakeWriter) Close() error {
	w.d.closed = true
	return w.d.closeErr
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDownloadDialogConfirmed(t *testing.T) {
	dir := t.TempDir()
	dialog := &fakeDialog{}
	d := &Downloader{Dialog: dialog, Dir: dir}

	ok := d.Download(context.Background(), "a,b\n", "out.csv")

	assert.True(t, ok)
	assert.True(t, dialog.closed, "write stream must be closed")
	assert.Equal(t, utf8BOM+"a,b\n", dialog.buf.String(), "payload must carry the BOM")
	assert.Empty(t, dirEntries(t, dir), "fallback must not run after a confirmed save")
}

func TestDownloadDialogCanceledSkipsFallback(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dialog: &fakeDialog{openErr: ErrCanceled}, Dir: dir}

	ok := d.Download(context.Background(), "a\n", "out.csv")

	assert.False(t, ok)
	assert.Empty(t, dirEntries(t, dir), "cancel is terminal, no fallback")
}

func TestDownloadDialogPermissionDeniedSkipsFallback(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dialog: &fakeDialog{openErr: fs.ErrPermission}, Dir: dir}

	ok := d.Download(context.Background(), "a\n", "out.csv")

	assert.False(t, ok)
	assert.Empty(t, dirEntries(t, dir))
}

func TestDownloadDialogUnsupportedFallsBack(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dialog: &fakeDialog{openErr: ErrNotSupported}, Dir: dir}

	ok := d.Download(context.Background(), "a,b\n", "out.csv")

	assert.True(t, ok)
	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, utf8BOM+"a,b\n", string(data))
}

func TestDownloadDialogWriteErrorFallsBack(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dialog: &fakeDialog{writeErr: errors.New("disk full")}, Dir: dir}

	ok := d.Download(context.Background(), "a\n", "out.csv")

	assert.True(t, ok)
	assert.Equal(t, []string{"out.csv"}, dirEntries(t, dir))
}

func TestDownloadWithoutDialog(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dir: dir}

	ok := d.Download(context.Background(), "x\n", "report.csv")

	assert.True(t, ok)
	data, err := os.ReadFile(filepath.Join(dir, "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, utf8BOM+"x\n", string(data))
}

func TestDownloadAvoidsCollisions(t *testing.T) {
	dir := t.TempDir()
	d := &Downloader{Dir: dir}

	require.True(t, d.Download(context.Background(), "first\n", "out.csv"))
	require.True(t, d.Download(context.Background(), "second\n", "out.csv"))

	entries := dirEntries(t, dir)
	assert.Len(t, entries, 2, "second download must not overwrite the first")
}

func TestDownloadFallbackFailure(t *testing.T) {
	// Point the download directory at an existing regular file so even the
	// fallback cannot succeed.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	d := &Downloader{Dir: blocker}
	ok := d.Download(context.Background(), "a\n", "out.csv")

	assert.False(t, ok)
}

func TestPromptDialogAcceptsSuggestedName(t *testing.T) {
	dir := t.TempDir()
	suggested := filepath.Join(dir, "out.csv")

	var prompt bytes.Buffer
	dlg := NewPromptDialog(bytes.NewBufferString("\n"), &prompt)

	w, err := dlg.Open(context.Background(), suggested, CSVFileType)
	require.NoError(t, err)

	_, err = io.WriteString(w, "data")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(suggested)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
	assert.Contains(t, prompt.String(), "out.csv")
}

func TestPromptDialogEditedName(t *testing.T) {
	dir := t.TempDir()
	edited := filepath.Join(dir, "renamed.csv")

	dlg := NewPromptDialog(bytes.NewBufferString(edited+"\n"), io.Discard)

	w, err := dlg.Open(context.Background(), filepath.Join(dir, "out.csv"), CSVFileType)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(edited)
	assert.NoError(t, err)
}

func TestPromptDialogClosedInputCancels(t *testing.T) {
	dlg := NewPromptDialog(bytes.NewReader(nil), io.Discard)

	_, err := dlg.Open(context.Background(), "out.csv", CSVFileType)
	assert.ErrorIs(t, err, ErrCanceled)
}
