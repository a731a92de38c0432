package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DetectDialog probes the environment for a confirmable save capability.
// It returns an interactive prompt dialog when stdin is a terminal, or nil
// when no such capability exists and only the fallback path applies.
func DetectDialog() Dialog {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return NewPromptDialog(os.Stdin, os.Stdout)
	}
	return nil
}

// PromptDialog is the terminal rendition of a native save dialog: it
// suggests a file name on out, reads the confirmed (or edited) destination
// from in, and opens it for writing. Closing the input stream (ctrl-D)
// cancels the save.
type PromptDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptDialog builds a PromptDialog reading from in and prompting on out.
func NewPromptDialog(in io.Reader, out io.Writer) *PromptDialog {
	return &PromptDialog{in: bufio.NewReader(in), out: out}
}

// Open implements Dialog. An empty line accepts the suggested name.
func (p *PromptDialog) Open(ctx context.Context, suggestedName string, fileType FileType) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Save %s as [%s]: ", fileType.Description, suggestedName)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) == "" {
			return nil, ErrCanceled
		}
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read destination: %w", err)
		}
	}

	name := strings.TrimSpace(line)
	if name == "" {
		name = suggestedName
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("open destination: %w", err)
	}
	return f, nil
}
