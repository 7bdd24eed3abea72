package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/tasklist/internal/domain"
)

// Ensure promptConfirmer implements domain.Confirmer.
var _ domain.Confirmer = (*promptConfirmer)(nil)

// promptConfirmer asks a yes/no question on a terminal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and reads one line. Only "y" or "yes" count as yes;
// end of input counts as no.
func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(p.out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
