package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const promptText = "Введите пароль: "

// Source is where the password comes from. It is decided once, from the
// positional arguments.
type Source int

// Password sources.
const (
	SourceArgument Source = iota
	SourcePrompt
)

func (s Source) String() string {
	switch s {
	case SourceArgument:
		return "argument"
	case SourcePrompt:
		return "prompt"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

func selectSource(args []string) Source {
	if len(args) > 0 {
		return SourceArgument
	}
	return SourcePrompt
}

type passwordReader struct {
	stdin  io.Reader
	prompt io.Writer
	hidden bool
}

type readResult struct {
	password string
	err      error
}

// read returns the first positional argument verbatim, or prompts for one
// line of input. Only the first argument is used. A prompt read gives up
// with ctx.Err() once ctx is done.
func (r passwordReader) read(ctx context.Context, args []string) (string, error) {
	if selectSource(args) == SourceArgument {
		return args[0], nil
	}

	fmt.Fprint(r.prompt, promptText)

	readFn := func() (string, error) { return readLine(r.stdin) }
	restore := func() {}

	if r.hidden {
		if f, ok := r.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			fd := int(f.Fd())
			if state, err := term.GetState(fd); err == nil {
				restore = func() { _ = term.Restore(fd, state) }
			}
			readFn = func() (string, error) {
				b, err := term.ReadPassword(fd)
				// ReadPassword swallows the newline typed by the user.
				fmt.Fprintln(r.prompt)
				if err != nil {
					return "", fmt.Errorf("read password: %w", err)
				}
				return string(b), nil
			}
		}
	}

	// The read below cannot be interrupted; it is left behind on cancel and
	// goes away with the process.
	done := make(chan readResult, 1)
	go func() {
		password, err := readFn()
		done <- readResult{password: password, err: err}
	}()

	select {
	case res := <-done:
		return res.password, res.err
	case <-ctx.Done():
		restore()
		fmt.Fprintln(r.prompt)
		return "", ctx.Err()
	}
}

func readLine(stdin io.Reader) (string, error) {
	buf := make([]byte, 0, 64*1024)
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(buf, 10*1024*1024)

	if scanner.Scan() {
		return scanner.Text(), nil
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	// EOF before any input.
	return "", nil
}
