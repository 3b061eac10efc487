package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: novelfmt <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Format chapter files into XHTML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'novelfmt help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: novelfmt convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format chapter files (.txt, .yaml, .yml) into XHTML documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Chapter file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: <input>/xhtml)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chapters:")
	fmt.Fprintln(w, "      --min-length <n>      Skip chapters shorter than n characters (default: 10)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Illustrations:")
	fmt.Fprintln(w, "      --images <dir>        Image directory for illustrations.xhtml")
	fmt.Fprintln(w, "      --images-title <s>    Illustration page title (default: 插图)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name (default: main)")
	fmt.Fprintln(w, "      --template <name>     Template set name (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-level <level>   trace, debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <fmt>    console or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NOVELFMT_CONFIG, NOVELFMT_INPUT_DIR, NOVELFMT_OUTPUT_DIR, NOVELFMT_ASSET_PATH,")
	fmt.Fprintln(w, "  NOVELFMT_STYLE, NOVELFMT_TEMPLATE_SET, NOVELFMT_MIN_CONTENT_LENGTH,")
	fmt.Fprintln(w, "  NOVELFMT_ILLUSTRATIONS_DIR, NOVELFMT_ILLUSTRATIONS_TITLE,")
	fmt.Fprintln(w, "  NOVELFMT_LOG_LEVEL, NOVELFMT_LOG_FORMAT, NOVELFMT_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: novelfmt version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: novelfmt help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
