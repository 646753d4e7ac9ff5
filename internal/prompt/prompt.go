// Package prompt acquires values from an operator over a line-based console.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/tansive/mcpconf/internal/common/apperrors"
)

var (
	// ErrPrompt is the base error for the package.
	ErrPrompt = apperrors.New("prompt error")

	// ErrAborted is returned when input ends or the context is cancelled.
	ErrAborted = ErrPrompt.New("input aborted").SetExitCode(130)
)

// Prompter asks for a single string value. The returned value always passes validate.
type Prompter interface {
	AskString(ctx context.Context, label, defaultValue string, validate func(string) error) (string, error)
}

var (
	questionMark = color.New(color.FgGreen, color.Bold)
	defaultHint  = color.New(color.FgHiBlack)
	invalidLabel = color.New(color.FgRed)
)

type line struct {
	text string
	err  error
}

// Console is a Prompter reading lines from in and writing prompts to out.
type Console struct {
	in        io.Reader
	out       io.Writer
	once      sync.Once
	lines     chan line
	done      chan struct{}
	closeOnce sync.Once
}

var _ Prompter = (*Console)(nil)

// NewConsole returns a console over in and out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, done: make(chan struct{})}
}

// Close releases the input reader. Reads after Close fail with ErrAborted.
func (c *Console) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Console) send(l line) bool {
	select {
	case c.lines <- l:
		return true
	case <-c.done:
		return false
	}
}

// readLine waits for the next input line. The scanner runs on its own goroutine so a
// cancelled context unblocks the caller even while stdin is still open.
func (c *Console) readLine(ctx context.Context) (string, error) {
	c.once.Do(func() {
		c.lines = make(chan line)
		go func() {
			defer close(c.lines)
			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				if !c.send(line{text: scanner.Text()}) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				c.send(line{err: err})
			}
		}()
	})

	select {
	case <-c.done:
		return "", ErrAborted
	default:
	}

	select {
	case <-ctx.Done():
		return "", ErrAborted.Err(ctx.Err())
	case <-c.done:
		return "", ErrAborted
	case l, ok := <-c.lines:
		if !ok {
			return "", ErrAborted
		}
		if l.err != nil {
			return "", ErrAborted.Err(l.err)
		}
		return l.text, nil
	}
}

func (c *Console) ask(label, hint string) {
	fmt.Fprint(c.out, questionMark.Sprint("? "), label)
	if hint != "" {
		fmt.Fprint(c.out, " ", defaultHint.Sprint("["+hint+"]"))
	}
	fmt.Fprint(c.out, ": ")
}

func (c *Console) invalid(msg string) {
	fmt.Fprintln(c.out, invalidLabel.Sprint(">> "+msg))
}

// AskString prompts until the entered value passes validate. An empty line selects
// defaultValue.
func (c *Console) AskString(ctx context.Context, label, defaultValue string, validate func(string) error) (string, error) {
	for {
		c.ask(label, defaultValue)
		text, err := c.readLine(ctx)
		if err != nil {
			fmt.Fprintln(c.out)
			return "", err
		}
		value := text
		if strings.TrimSpace(text) == "" {
			value = defaultValue
		}
		if validate != nil {
			if err := validate(value); err != nil {
				c.invalid(apperrors.Describe(err))
				continue
			}
		}
		return value, nil
	}
}

// Select shows a numbered menu and returns the index of the chosen option.
func (c *Console) Select(ctx context.Context, label string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, ErrPrompt.Msg("nothing to select from")
	}
	fmt.Fprintln(c.out, questionMark.Sprint("? ")+label)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, opt)
	}
	for {
		c.ask("Enter a number", fmt.Sprintf("1-%d", len(options)))
		text, err := c.readLine(ctx)
		if err != nil {
			fmt.Fprintln(c.out)
			return -1, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n < 1 || n > len(options) {
			c.invalid(fmt.Sprintf("enter a number between 1 and %d", len(options)))
			continue
		}
		return n - 1, nil
	}
}

// Confirm asks a yes/no question. An empty line returns def.
func (c *Console) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		c.ask(label, hint)
		text, err := c.readLine(ctx)
		if err != nil {
			fmt.Fprintln(c.out)
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.invalid("answer y or n")
	}
}
