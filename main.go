package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
	"pigeonhole/internal/render"
	"pigeonhole/internal/tui"
)

// cli carries the process streams so commands never touch globals.
type cli struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	out     *render.Printer
	getwd   func() (string, error)
	confirm func(prompt string) (bool, error)
	verbose bool
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli {
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		out:    render.NewPrinter(stdout),
		getwd:  os.Getwd,
	}
	c.confirm = func(prompt string) (bool, error) {
		return tui.Confirm(prompt, c.stdin, c.stdout)
	}
	return c
}

func checkUpdate(w io.Writer, currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "betterthan-yesterday",
		Repository: "file-organizer",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Fprintf(w, "A new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else {
		fmt.Fprintf(w, "You are using the latest version: %s\n", currentVer)
	}
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [options] <command> [command options]\n\n", model.AppName)
	fmt.Fprintf(w, "%s lists the current directory and keeps a JSON record of it.\n\n", model.AppName)
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  init     Create the config file and empty documents\n")
	fmt.Fprintf(w, "  show     Toggle display flags, synchronize and print the listing\n")
	fmt.Fprintf(w, "  format   Recompute every stored record\n")
	fmt.Fprintf(w, "  sort     Validate a sort key (ordering is not applied)\n")
	fmt.Fprintf(w, "  info     Print one stored record by id\n")
	fmt.Fprintf(w, "  flags    Print the persisted display flags\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s init            # Set up documents for this directory\n", model.AppName)
	fmt.Fprintf(w, "  %s show -a -d      # Toggle hidden entries and directories\n", model.AppName)
	fmt.Fprintf(w, "  %s show -s box     # Print a boxed table\n", model.AppName)
}

// run executes one invocation and returns the exit code.
func (c *cli) run(args []string) int {
	fs := pflag.NewFlagSet(model.AppName, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { usage(c.stderr, fs) }

	versionFlag := fs.BoolP("version", "V", false, "Print version information")
	updateFlag := fs.BoolP("update", "u", false, "Check for a newer release")
	verboseFlag := fs.BoolP("verbose", "v", false, "Log debug details to stderr")
	helpFlag := fs.BoolP("help", "h", false, "Show this help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *helpFlag {
		usage(c.stdout, fs)
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(c.stdout, "%s v%s\n", model.AppName, model.Version)
		return 0
	}

	if *updateFlag {
		checkUpdate(c.stdout, model.Version)
		return 0
	}

	c.verbose = *verboseFlag
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	if err := logging.Init(logging.Config{Level: level}); err != nil {
		fmt.Fprintf(c.stderr, "Error initializing logging: %v\n", err)
		return 1
	}
	defer logging.Sync()

	rest := fs.Args()
	if len(rest) == 0 {
		usage(c.stderr, fs)
		return 1
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "init":
		return c.runInit(cmdArgs)
	case "show":
		return c.runShow(cmdArgs)
	case "format":
		return c.runFormat(cmdArgs)
	case "sort":
		return c.runSort(cmdArgs)
	case "info":
		return c.runInfo(cmdArgs)
	case "flags":
		return c.runFlags(cmdArgs)
	default:
		c.out.Printf(render.Failure, "Unknown command %q", cmd)
		usage(c.stderr, fs)
		return 1
	}
}

func main() {
	os.Exit(newCLI(os.Stdin, os.Stdout, os.Stderr).run(os.Args[1:]))
}
