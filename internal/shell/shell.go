// Package shell implements the interactive command loop over a virtual
// filesystem tree.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"vfsshell/internal/fs"
	"vfsshell/internal/logging"
)

var (
	logger = logging.GetLogger().WithPrefix("shell")

	// ErrUnknownCommand is reported for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is reported when a command gets the wrong arguments.
	ErrUsage = errors.New("invalid usage")
)

// Command names understood by the shell.
const (
	CmdList  = "ls"
	CmdCd    = "cd"
	CmdReset = "vfs-init"
	CmdExit  = "exit"
)

// ResetMessage is printed after a successful vfs-init.
const ResetMessage = "VFS reset to default state"

// Shell reads commands and applies them to a tree. Command errors are
// printed and never end the session.
type Shell struct {
	tree      *fs.Tree
	out       io.Writer
	prompt    string
	expandEnv bool
	echo      bool
	getenv    func(string) string
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the text shown before the working directory in the prompt.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithExpandEnv toggles $VAR and ${VAR} substitution in command lines. It is
// off by default because node names may contain "$".
func WithExpandEnv(enabled bool) Option {
	return func(s *Shell) {
		s.expandEnv = enabled
	}
}

// WithEcho makes the shell print each command after its prompt, which keeps
// script playback readable.
func WithEcho(enabled bool) Option {
	return func(s *Shell) {
		s.echo = enabled
	}
}

// WithGetenv replaces the variable lookup used for substitution.
func WithGetenv(getenv func(string) string) Option {
	return func(s *Shell) {
		s.getenv = getenv
	}
}

// New creates a shell over tree writing to out.
func New(tree *fs.Tree, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		tree:      tree,
		out:       out,
		prompt:    "VFS",
		expandEnv: false,
		getenv:    os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt returns the prompt for the current working directory, e.g. "VFS:/docs> ".
func (s *Shell) Prompt() string {
	return fmt.Sprintf("%s:%s> ", s.prompt, s.tree.Cwd())
}

// Run reads commands from in until exit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, s.Prompt())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			logger.Debug("End of input")
			return nil
		}

		line := scanner.Text()
		if s.echo {
			fmt.Fprintln(s.out, line)
		}

		exit, err := s.Execute(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if exit {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the session should
// end; the returned error describes a failed command.
func (s *Shell) Execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if s.expandEnv {
		line = strings.TrimSpace(os.Expand(line, s.getenv))
	}
	if line == "" {
		return false, nil
	}

	name, arg := splitCommand(line)
	logger.Debug("Executing %q with argument %q", name, arg)

	switch name {
	case CmdExit:
		if arg != "" {
			return false, fmt.Errorf("%w: %s takes no arguments", ErrUsage, name)
		}
		return true, nil
	case CmdList:
		if arg != "" {
			return false, fmt.Errorf("%w: %s takes no arguments", ErrUsage, name)
		}
		for _, entry := range s.tree.List() {
			fmt.Fprintln(s.out, entry)
		}
	case CmdCd:
		if arg == "" {
			return false, fmt.Errorf("%w: %s <directory>", ErrUsage, name)
		}
		return false, s.tree.ChangeDirectory(arg)
	case CmdReset:
		if arg != "" {
			return false, fmt.Errorf("%w: %s takes no arguments", ErrUsage, name)
		}
		s.tree.Reset()
		fmt.Fprintln(s.out, ResetMessage)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return false, nil
}

// splitCommand splits line at its first run of white space. The argument
// keeps any inner spaces, so "cd my docs" targets "my docs".
func splitCommand(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
