package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	style       string
	templateSet string
	assetPath   string
}

// chapterFlags holds chapter filtering flags.
type chapterFlags struct {
	minLength int
}

// illustrationFlags holds illustration page flags.
type illustrationFlags struct {
	dir   string
	title string
}

// logFlags holds logging flags.
type logFlags struct {
	level  string
	format string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	output        string
	workers       int
	assets        assetFlags
	chapter       chapterFlags
	illustrations illustrationFlags
	log           logFlags

	// changed records flags set on the command line, so zero values can
	// still override config.
	changed map[string]bool
}

// isSet reports whether the named flag was given explicitly.
func (f *convertFlags) isSet(name string) bool {
	return f.changed[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.templateSet, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addChapterFlags adds chapter filtering flags to a FlagSet.
func addChapterFlags(fs *flag.FlagSet, f *chapterFlags) {
	fs.IntVar(&f.minLength, "min-length", 0, "skip chapters shorter than n characters")
}

// addIllustrationFlags adds illustration page flags to a FlagSet.
func addIllustrationFlags(fs *flag.FlagSet, f *illustrationFlags) {
	fs.StringVar(&f.dir, "images", "", "image directory for the illustration page")
	fs.StringVar(&f.title, "images-title", "", "illustration page title")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: trace, debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
func newConvertFlagSet(usage io.Writer) (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{changed: make(map[string]bool)}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addChapterFlags(fs, &f.chapter)
	addIllustrationFlags(fs, &f.illustrations)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printConvertUsage(usage) }

	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet(usage)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
