// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cfgscrub/cfgscrub/internal/core"
)

// prompter asks for values the user did not pass as flags. An empty
// answer or end of input cancels the operation.
type prompter struct {
	out    io.Writer
	reader *bufio.Reader
	// fd is set when input is an interactive terminal.
	fd int
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	p := &prompter{out: cmd.ErrOrStderr(), reader: bufio.NewReader(in), fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// line reads one line of visible input.
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt+" ")
	answer, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	answer = strings.TrimRight(answer, "\r\n")
	if answer == "" {
		return "", core.ErrCancelled
	}
	return answer, nil
}

// secret reads input without echo on a terminal, and as a plain line
// otherwise.
func (p *prompter) secret(prompt string) (string, error) {
	if p.fd < 0 {
		return p.line(prompt)
	}
	fmt.Fprint(p.out, prompt+" ")
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", core.ErrCancelled
	}
	return string(b), nil
}
