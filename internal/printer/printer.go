package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/andy/facturier/internal/domain"
)

var ErrEmptyCommand = errors.New("print command is empty")

// FilePrinter writes the printed document to a directory
type FilePrinter struct {
	Dir string
}

// NewFilePrinter creates a printer writing into dir
func NewFilePrinter(dir string) *FilePrinter {
	return &FilePrinter{Dir: dir}
}

// Print writes the document and returns its path. The job id is part of the
// file name so reprinting an invoice number never overwrites an earlier copy.
func (p *FilePrinter) Print(ctx context.Context, job domain.PrintJob) (string, error) {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(p.Dir, FileName(job))
	if err := os.WriteFile(path, []byte(Render(job)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// FileName returns "<invoice number>-<short job id>.txt"
func FileName(job domain.PrintJob) string {
	number := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(job.Draft.InvoiceNumber))
	if number == "" {
		number = "invoice"
	}

	id := job.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s.txt", number, id)
}

// CommandPrinter keeps a copy on disk and pipes the document to a print
// command such as "lp" or "lpr -P office"
type CommandPrinter struct {
	File    *FilePrinter
	Command string
}

// NewCommandPrinter creates a printer sending documents to command
func NewCommandPrinter(dir, command string) *CommandPrinter {
	return &CommandPrinter{File: NewFilePrinter(dir), Command: command}
}

// Print writes the document, then feeds it to the command on stdin
func (p *CommandPrinter) Print(ctx context.Context, job domain.PrintJob) (string, error) {
	args := strings.Fields(p.Command)
	if len(args) == 0 {
		return "", ErrEmptyCommand
	}

	path, err := p.File.Print(ctx, job)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(Render(job))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return path, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return path, fmt.Errorf("%s: %w", args[0], err)
	}

	return fmt.Sprintf("%s (%s)", path, args[0]), nil
}
