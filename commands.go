package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"

	"pigeonhole/internal/app"
	"pigeonhole/internal/config"
	"pigeonhole/internal/format"
	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
	"pigeonhole/internal/render"
)

func (c *cli) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: %s %s [options]\n\nOptions:\n", model.AppName, name)
		fs.PrintDefaults()
	}
	return fs
}

// parse reports whether the command should go on, and its exit code if not.
func parse(fs *pflag.FlagSet, args []string) (bool, int) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, 0
		}
		return false, 1
	}
	return true, 0
}

// fail prints an error the way every command reports it and returns 1.
func (c *cli) fail(action string, err error) int {
	logging.Debug(action+" failed", logging.Err(err))

	var classified *model.Error
	if errors.As(err, &classified) {
		c.out.Printf(render.Failure, "%s failed with %q", action, classified.Message())
		if c.verbose {
			c.out.Println(err.Error(), render.Failure)
		}
		return 1
	}
	c.out.Printf(render.Failure, "%s failed: %v", action, err)
	return 1
}

// session locates and loads the config and opens a session for the cwd.
func (c *cli) session() (*app.Session, int) {
	path, err := config.Locate()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			c.out.Printf(render.Failure, "Config file not found. Please run \"%s init\"", model.AppName)
			return nil, 1
		}
		return nil, c.fail("Locating config", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, c.fail("Loading config", err)
	}
	if cfg.LogLevel != "" && !c.verbose {
		logging.SetLevel(cfg.LogLevel)
	}

	cwd, err := c.getwd()
	if err != nil {
		return nil, c.fail("Reading working directory", model.NewError(model.DirReadError, "", err))
	}
	s := app.Open(cfg, cwd)
	if _, err := os.Stat(s.Entries.Path()); err != nil {
		c.out.Printf(render.Failure, "Database not found. Please run \"%s init\"", model.AppName)
		return nil, 1
	}
	return s, 0
}

func (c *cli) runInit(args []string) int {
	fs := c.flagSet("init")
	dbPath := fs.String("db-path", "", "Entries document location (default: config directory)")
	flagsPath := fs.String("flags-path", "", "Flags document location (default: config directory)")
	fields := fs.String("fields", "", "Comma separated record fields (default: Name, Last Modified, Size)")
	force := fs.BoolP("force", "f", false, "Reset an existing setup without confirmation")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	cfgPath, err := config.FilePath()
	if err != nil {
		return c.fail("Creating config file", err)
	}
	cwd, err := c.getwd()
	if err != nil {
		return c.fail("Creating config file", model.NewError(model.DirReadError, "", err))
	}

	cfg := config.Config{Path: cfgPath, Directory: cwd}
	cfg.Database, cfg.Flags = config.DefaultPaths(filepath.Dir(cfgPath), cwd)
	if *dbPath != "" {
		cfg.Database = absPath(cwd, *dbPath)
	}
	if *flagsPath != "" {
		cfg.Flags = absPath(cwd, *flagsPath)
	}
	if *fields != "" {
		cfg.Fields = config.ParseFields(*fields)
		for _, f := range cfg.Fields {
			if !format.Known(f) {
				c.out.Printf(render.Failure, "Unknown field %q (known: %v)", f, format.Fields())
				return 1
			}
		}
	}

	if _, err := os.Stat(cfg.Database); err == nil && !*force {
		ok, err := c.confirm("A setup already exists. Reset flags and stored entries?")
		if err != nil {
			return c.fail("Confirmation", err)
		}
		if !ok {
			c.out.Println("Operation cancelled", render.Plain)
			return 0
		}
	}

	if err := app.Initialize(cfg); err != nil {
		return c.fail("Creating database file", err)
	}
	c.out.Printf(render.Success, "The %s database is %s", model.AppName, cfg.Database)
	return 0
}

func (c *cli) runShow(args []string) int {
	fs := c.flagSet("show")
	hidden := fs.BoolP("hidden", "a", false, "Toggle showing hidden entries")
	dirs := fs.BoolP("dirs", "d", false, "Toggle showing directories")
	repeat := fs.BoolP("repeat", "r", false, "Toggle showing the listing after other commands")
	styleName := fs.StringP("style", "s", string(render.StylePlain), "Output style: table, box, csv, markdown")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	style, err := render.ParseStyle(*styleName)
	if err != nil {
		c.out.Println(err.Error(), render.Failure)
		return 1
	}

	s, code := c.session()
	if s == nil {
		return code
	}

	_, res, err := s.Show(model.Toggles{Hidden: *hidden, Dirs: *dirs, Repeat: *repeat})
	if err != nil {
		return c.fail("Showing directory", err)
	}
	return c.display(s, res.Records, style)
}

func (c *cli) runFormat(args []string) int {
	fs := c.flagSet("format")
	force := fs.BoolP("force", "f", false, "Rewrite without confirmation")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	s, code := c.session()
	if s == nil {
		return code
	}

	if !*force {
		ok, err := c.confirm("Recompute and overwrite every stored entry?")
		if err != nil {
			return c.fail("Confirmation", err)
		}
		if !ok {
			c.out.Println("Operation cancelled", render.Plain)
			return 0
		}
	}

	flags, res, err := s.Format()
	if err != nil {
		return c.fail("Formatting entries", err)
	}
	c.out.Printf(render.Success, "%d entries formatted", len(res.Records))
	if flags.RepeatShow {
		return c.display(s, res.Records, render.StylePlain)
	}
	return 0
}

func (c *cli) runSort(args []string) int {
	fs := c.flagSet("sort")
	reverse := fs.BoolP("reverse", "r", false, "Reverse the order")
	if ok, code := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	s, code := c.session()
	if s == nil {
		return code
	}

	flags, records, err := s.Sort(fs.Arg(0), *reverse)
	if err != nil {
		return c.fail("Sorting", err)
	}
	c.out.Println("Sorting is not available yet; order is unchanged", render.Notice)
	if flags.RepeatShow {
		return c.display(s, records, render.StylePlain)
	}
	return 0
}

func (c *cli) runInfo(args []string) int {
	fs := c.flagSet("info")
	if ok, code := parse(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		c.out.Printf(render.Failure, "Invalid id %q", fs.Arg(0))
		return 1
	}

	s, code := c.session()
	if s == nil {
		return code
	}

	rec, err := s.Info(id)
	if err != nil {
		return c.fail(fmt.Sprintf("Reading entry # %d", id), err)
	}
	for _, f := range rec {
		c.out.Printf(render.Plain, "%s: %s", f.Key, f.Value)
	}
	return 0
}

func (c *cli) runFlags(args []string) int {
	fs := c.flagSet("flags")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	s, code := c.session()
	if s == nil {
		return code
	}

	flags, err := s.ReadFlags()
	if err != nil {
		return c.fail("Reading flags", err)
	}
	c.out.Printf(render.Plain, "show_hidden: %t", flags.ShowHidden)
	c.out.Printf(render.Plain, "show_dirs:   %t", flags.ShowDirs)
	c.out.Printf(render.Plain, "repeat_show: %t", flags.RepeatShow)
	return 0
}

// display renders the listing or the no-items message.
func (c *cli) display(s *app.Session, records model.Records, style render.Style) int {
	text, err := render.Render(records, style)
	if errors.Is(err, render.ErrNoItems) {
		c.out.Println("There are no items in this directory yet", render.Failure)
		return 0
	}
	if err != nil {
		return c.fail("Rendering", err)
	}

	if style == render.StylePlain {
		c.out.Printf(render.Heading, "\n%s:", filepath.Base(s.Dir))
		c.out.Table(text)
		return 0
	}
	fmt.Fprint(c.stdout, text)
	return 0
}

func absPath(cwd, p string) string {
	p = model.ExpandTilde(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cwd, p)
}
