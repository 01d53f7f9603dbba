// Package maincmd implements the interpret command-line tool: flag parsing,
// exit-code translation, and the wiring between the loader and the engine.
package maincmd

import (
	"fmt"
	"strings"

	"github.com/mna/mainer"

	"github.com/ondrejsv/ippcode22/lang/loader"
	"github.com/ondrejsv/ippcode22/lang/machine"
)

const binName = "interpret"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [--source=PATH] [--input=PATH]
       %[1]s -h|--help
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [--source=PATH] [--input=PATH]
       %[1]s -h|--help

Executes an IPPcode22 program read as an XML document.

At least one of --source/--input must be given; the missing one is read
from standard input. IPP22_SOURCE/IPP22_INPUT environment variables supply
defaults when the corresponding flag is absent.

Valid flag options are:
       --source=PATH             Path to the XML source program.
       --input=PATH              Path to the program's input stream.
       -h --help                 Show this help and exit.
`, binName)
)

// Cmd is the interpret command's flag set and entrypoint.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Source string `flag:"source"`
	Input  string `flag:"input"`
	Help   bool   `flag:"h,help"`

	flags map[string]bool
}

func (c *Cmd) SetArgs(_ []string)            {}
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

// Validate implements mainer's validation hook. --help excludes every other
// flag; otherwise nothing is mandatory here, since --source/--input/env-var
// fallback/stdin are reconciled together in resolveStreams (the "at least
// one" rule from spec.md §6 depends on env vars too, so it cannot be
// checked from flags alone).
func (c *Cmd) Validate() error {
	if c.Help && (c.flags["source"] || c.flags["input"]) {
		return fmt.Errorf("--help cannot be combined with other flags")
	}
	return nil
}

// flagAliases maps every recognized flag spelling to a canonical name, so
// -h and --help (or two --source occurrences) are recognized as the same
// flag by checkRepeatedFlags below.
var flagAliases = map[string]string{
	"--source": "source",
	"--input":  "input",
	"-h":       "help",
	"--help":   "help",
}

// checkRepeatedFlags rejects a flag given more than once, per spec.md §6:
// "each at most once. Repetition ... -> exit code 10." It is checked against
// the raw argument list before handing off to mainer, independently of
// whatever mainer's own Parser does with repeated flags.
func checkRepeatedFlags(args []string) error {
	seen := make(map[string]bool)
	for _, arg := range args {
		name := arg
		if i := strings.IndexByte(arg, '='); i >= 0 {
			name = arg[:i]
		}
		canonical, ok := flagAliases[name]
		if !ok {
			continue
		}
		if seen[canonical] {
			return fmt.Errorf("flag %q given more than once", name)
		}
		seen[canonical] = true
	}
	return nil
}

// Main parses args, resolves the program and input streams, runs the
// engine, and returns the fixed IPPcode22 exit code for the outcome.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	if err := checkRepeatedFlags(args); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(machine.CodeCLIMisuse)
	}

	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(machine.CodeCLIMisuse)
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	streams, err := resolveStreams(c, stdio.Stdin)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n%s", err, shortUsage)
		return mainer.ExitCode(machine.CodeCLIMisuse)
	}
	defer streams.Close()

	srcFile, err := streams.openSource()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.ExitCode(machine.CodeFileOpen)
	}
	inputFile, err := streams.openInput()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.ExitCode(machine.CodeFileOpen)
	}

	table, err := loader.Decode(srcFile)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return exitCodeFor(err)
	}

	eng := machine.NewEngine(table, inputFile, stdio.Stdout, stdio.Stderr)
	if err := eng.Run(); err != nil {
		var exitErr *machine.ExitError
		if ok := asExitError(err, &exitErr); ok {
			return mainer.ExitCode(exitErr.Code)
		}
		fmt.Fprintln(stdio.Stderr, err)
		return exitCodeFor(err)
	}
	return mainer.Success
}

func asExitError(err error, target **machine.ExitError) bool {
	if ee, ok := err.(*machine.ExitError); ok {
		*target = ee
		return true
	}
	return false
}

func exitCodeFor(err error) mainer.ExitCode {
	if code, ok := machine.DiagnosticCode(err); ok {
		return mainer.ExitCode(code)
	}
	return mainer.ExitCode(machine.CodeCLIMisuse)
}
