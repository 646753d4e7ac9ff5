package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func notEmpty(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value cannot be empty.")
	}
	return nil
}

func TestAskString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      string
		validate func(string) error
		want     string
		prompts  int
	}{
		{name: "typed value", input: "hello\n", want: "hello", prompts: 1},
		{name: "empty takes default", input: "\n", def: "8080", want: "8080", prompts: 1},
		{name: "whitespace takes default", input: "   \n", def: "x", want: "x", prompts: 1},
		{name: "value kept verbatim", input: " padded \n", want: " padded ", prompts: 1},
		{name: "empty without rule", input: "\n", want: "", prompts: 1},
		{name: "re-prompt until valid", input: "\n  \nkey\n", validate: notEmpty, want: "key", prompts: 3},
		{name: "default satisfies rule", input: "\n", def: "prev", validate: notEmpty, want: "prev", prompts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)
			got, err := c.AskString(context.Background(), "port (listen port)", tt.def, tt.validate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.prompts, strings.Count(out.String(), "? port (listen port)"))
			if tt.def != "" {
				assert.Contains(t, out.String(), "["+tt.def+"]")
			}
			if tt.prompts > 1 {
				assert.Contains(t, out.String(), ">> value cannot be empty.")
			}
		})
	}
}

func TestAskStringAborted(t *testing.T) {
	t.Run("eof", func(t *testing.T) {
		c := NewConsole(strings.NewReader(""), io.Discard)
		_, err := c.AskString(context.Background(), "name", "", nil)
		assert.ErrorIs(t, err, ErrAborted)
	})

	t.Run("eof while invalid", func(t *testing.T) {
		c := NewConsole(strings.NewReader("\n"), io.Discard)
		_, err := c.AskString(context.Background(), "name", "", notEmpty)
		assert.ErrorIs(t, err, ErrAborted)
	})

	t.Run("cancelled", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		c := NewConsole(r, io.Discard)
		_, err := c.AskString(ctx, "name", "", nil)
		assert.ErrorIs(t, err, ErrAborted)
	})
}

func TestSequentialReads(t *testing.T) {
	c := NewConsole(strings.NewReader("one\ntwo\n"), io.Discard)
	first, err := c.AskString(context.Background(), "a", "", nil)
	require.NoError(t, err)
	second, err := c.AskString(context.Background(), "b", "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, []string{first, second})
}

func TestClose(t *testing.T) {
	c := NewConsole(strings.NewReader("one\ntwo\nthree\n"), io.Discard)
	first, err := c.AskString(context.Background(), "a", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "one", first)

	c.Close()
	c.Close()
	_, err = c.AskString(context.Background(), "b", "", nil)
	assert.ErrorIs(t, err, ErrAborted)

	assert.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-c.lines:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)
}

func TestSelect(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("0\nabc\n2\n"), &out)
	idx, err := c.Select(context.Background(), "Pick a client", []string{"Windsurf", "Cursor", "Claude"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "  3) Claude")
	assert.Equal(t, 2, strings.Count(out.String(), "enter a number between 1 and 3"))

	_, err = c.Select(context.Background(), "empty", nil)
	assert.ErrorIs(t, err, ErrPrompt)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\nno\n", true, false},
	}
	for _, tt := range tests {
		c := NewConsole(strings.NewReader(tt.input), io.Discard)
		got, err := c.Confirm(context.Background(), "Remove server?", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	c := NewConsole(strings.NewReader(""), io.Discard)
	_, err := c.Confirm(context.Background(), "Remove server?", true)
	assert.ErrorIs(t, err, ErrAborted)
}
