// Package convert turns DOCX documents into PDF by driving LibreOffice in
// headless mode.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the LibreOffice executable looked up on PATH.
const DefaultBinary = "soffice"

var (
	ErrInputNotFound = errors.New("input DOCX not found")
	ErrNoOutput      = errors.New("converter produced no PDF")
)

// Converter runs the office binary. The zero value uses DefaultBinary.
type Converter struct {
	Binary string
	// Stderr receives the converter's own output. Nil discards it.
	Stderr io.Writer
}

// Convert writes a PDF rendering of docxPath to pdfPath.
func (c *Converter) Convert(ctx context.Context, docxPath, pdfPath string) error {
	info, err := os.Stat(docxPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInputNotFound, docxPath)
	}
	if pdfPath == "" {
		pdfPath = DefaultPDFPath(docxPath)
	}

	outDir, err := os.MkdirTemp("", "umkmctl-convert-")
	if err != nil {
		return fmt.Errorf("creating work dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", outDir, docxPath)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, c.Stderr)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}

	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return ErrNoOutput
	}
	if dir := filepath.Dir(pdfPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	return moveFile(produced, pdfPath)
}

// DefaultPDFPath is docxPath with its extension replaced by .pdf.
func DefaultPDFPath(docxPath string) string {
	return strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
}

// moveFile renames src to dst, copying when they sit on different devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
