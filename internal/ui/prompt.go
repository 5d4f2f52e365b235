package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCancelled is returned when the operator declines a confirmation.
var ErrCancelled = errors.New("cancelled by user")

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal and --yes was not given.
var ErrNotInteractive = errors.New("confirmation required: stdin is not a terminal (use --yes)")

// Prompter asks the operator questions on in/out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Yes answers every confirmation with yes without reading In.
	Yes bool
	// Interactive reports whether In is attached to a terminal.
	Interactive bool

	r *bufio.Reader
}

// NewPrompter returns a Prompter reading answers from in. It is interactive
// only when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer, yes bool) *Prompter {
	f, _ := in.(*os.File)
	return &Prompter{
		In:          in,
		Out:         out,
		Yes:         yes,
		Interactive: IsTerminal(f),
	}
}

func (p *Prompter) reader() *bufio.Reader {
	if p.r == nil {
		p.r = bufio.NewReader(p.In)
	}
	return p.r
}

// Confirm prints question followed by " (y/n): " and returns nil only when
// the answer is y or Y.
func (p *Prompter) Confirm(question string) error {
	if p.Yes {
		return nil
	}
	if !p.Interactive {
		return ErrNotInteractive
	}
	fmt.Fprintf(p.Out, "%s (y/n): ", question)
	line, err := p.reader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading answer: %w", err)
	}
	if strings.TrimSpace(line) == "y" || strings.TrimSpace(line) == "Y" {
		return nil
	}
	return ErrCancelled
}

// Ask prints label and returns the trimmed line typed by the operator.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	line, err := p.reader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
