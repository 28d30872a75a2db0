package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	dynamic "github.com/dylan-lang/dynamic-binding"
	"github.com/dylan-lang/dynamic-binding/cmd/dynbind/logger"
	"github.com/dylan-lang/dynamic-binding/decl"
	"github.com/mccanne/charm"
	"github.com/peterh/liner"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var Dynbind = &charm.Spec{
	Name:  "dynbind",
	Usage: "dynbind [ options ] [ script ... ]",
	Short: "explore dynamically scoped bindings",
	Long: `
The dynbind command runs a tiny statement language over a dynamic-binding
stack.  With no arguments and a terminal on stdin it enters a repl;
otherwise it executes the named script files, or stdin, line by line.

Statements:

  let <name> [: <type>] = <literal> {, ...}   enter a scope with bindings
  end                                         exit the innermost scope
  <name>                                      print a binding's value
  <name> ?? <literal>                         print the value, or the default
  <name> = <literal>                          rebind the innermost binding
  env                                         list active bindings
  quit                                        exit all scopes and leave

Types are int64, uint64, float64, string, bool, time, and duration.
A rebind of a name with no active binding is silently ignored; a read of
one is an error unless a default is supplied.  Blank lines and lines
starting with # are skipped.
`,
	New: New,
}

func init() {
	Dynbind.Add(charm.Help)
}

type Command struct {
	repl    bool
	logConf logger.Config
	log     *zap.Logger
	stack   *dynamic.Stack
	scopes  []*dynamic.Scope
}

func New(_ charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{stack: dynamic.NewStack()}
	f.BoolVar(&c.repl, "repl", false, "enter the repl even if stdin is not a terminal")
	f.StringVar(&c.logConf.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	c.logConf.Level = zap.InfoLevel
	f.Var(&c.logConf.Level, "log.level", "logging level")
	c.logConf.Mode = logger.FileModeTruncate
	f.Var(&c.logConf.Mode, "log.filemode", "logger file write mode (values: append, truncate, rotate)")
	return c, nil
}

func (c *Command) Run(args []string) error {
	var err error
	if c.log, err = logger.New(c.logConf); err != nil {
		return err
	}
	defer c.log.Sync()
	defer c.reset()
	if len(args) > 0 {
		for _, path := range args {
			quit, err := c.script(path)
			if err != nil {
				return err
			}
			if quit {
				break
			}
		}
		return nil
	}
	if c.repl || term.IsTerminal(int(os.Stdin.Fd())) {
		return c.interactive()
	}
	_, err = c.batch(os.Stdin, "stdin")
	return err
}

func (c *Command) script(path string) (quit bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return c.batch(f, path)
}

func (c *Command) batch(r io.Reader, name string) (bool, error) {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		quit, err := c.execute(scanner.Text())
		if err != nil {
			return false, fmt.Errorf("%s, line %d: %w", name, line, err)
		}
		if quit {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func (c *Command) interactive() (err error) {
	rl := liner.NewLiner()
	defer func() {
		err = multierr.Append(err, rl.Close())
	}()
	for {
		line, err := rl.Prompt(c.prompt())
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		rl.AppendHistory(line)
		quit, err := c.execute(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (c *Command) prompt() string {
	if n := len(c.scopes); n > 0 {
		return fmt.Sprintf("%d> ", n)
	}
	return "> "
}

func (c *Command) execute(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	keyword, rest := splitWord(line)
	switch keyword {
	case "let":
		return false, c.let(rest)
	case "end":
		if rest != "" {
			return false, fmt.Errorf("end takes no arguments")
		}
		return false, c.end()
	case "env":
		if rest != "" {
			return false, fmt.Errorf("env takes no arguments")
		}
		c.env()
		return false, nil
	case "quit":
		return true, nil
	}
	return false, c.access(line)
}

func (c *Command) let(src string) error {
	bindings, err := decl.ParseBindings(src)
	if err != nil {
		return err
	}
	scope, err := c.stack.Enter(bindings)
	if err != nil {
		return err
	}
	c.scopes = append(c.scopes, scope)
	c.log.Debug("scope entered",
		zap.Stringer("scope", scope.ID()),
		zap.Int("depth", c.stack.Depth()))
	return nil
}

func (c *Command) end() error {
	n := len(c.scopes)
	if n == 0 {
		return fmt.Errorf("no open scope")
	}
	scope := c.scopes[n-1]
	c.scopes = c.scopes[:n-1]
	scope.Exit()
	c.log.Debug("scope exited",
		zap.Stringer("scope", scope.ID()),
		zap.Int("depth", c.stack.Depth()))
	return nil
}

func (c *Command) env() {
	seen := make(map[string]bool)
	for _, f := range c.stack.Active() {
		var suffix string
		if seen[f.Name()] {
			suffix = "  (shadowed)"
		}
		seen[f.Name()] = true
		if typ := f.Type(); typ != nil {
			fmt.Printf("%s: %s = %s%s\n", f.Name(), typ, format(f.Read()), suffix)
		} else {
			fmt.Printf("%s = %s%s\n", f.Name(), format(f.Read()), suffix)
		}
	}
}

// access handles the three name-directed statements: a bare read, a
// defaulted read, and a rebind.
func (c *Command) access(line string) error {
	name, rest := splitWord(line)
	if name == "" {
		return fmt.Errorf("illegal statement: %s", line)
	}
	switch {
	case rest == "":
		v, err := c.stack.Get(name)
		if err != nil {
			return err
		}
		fmt.Println(format(v))
	case strings.HasPrefix(rest, "??"):
		src := strings.TrimSpace(rest[2:])
		var defaultErr error
		v := c.stack.GetDefault(name, func() interface{} {
			var v interface{}
			v, defaultErr = decl.ParseLiteral(src)
			return v
		})
		if defaultErr != nil {
			return defaultErr
		}
		fmt.Println(format(v))
	case strings.HasPrefix(rest, "="):
		v, err := decl.ParseLiteral(strings.TrimSpace(rest[1:]))
		if err != nil {
			return err
		}
		if v, err = c.stack.Set(name, v); err != nil {
			return err
		}
		fmt.Println(format(v))
	default:
		return fmt.Errorf("illegal statement: %s", line)
	}
	return nil
}

// splitWord splits off a leading identifier or keyword, returning it
// and the trimmed remainder.
func splitWord(s string) (string, string) {
	var n int
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '*' && r != '-' {
			break
		}
		n += size
	}
	return s[:n], strings.TrimSpace(s[n:])
}

func format(v interface{}) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case time.Time:
		return v.Format(time.RFC3339)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (c *Command) reset() {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		c.scopes[i].Exit()
	}
	c.scopes = nil
}

func main() {
	if _, err := Dynbind.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
