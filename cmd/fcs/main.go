// Command fcs inspects, exports and rewrites Flow Cytometry Standard files.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/arloliu/fcs/config"
	"github.com/arloliu/fcs/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// CLI defines the command-line interface for fcs.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"existingfile"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn or error (overrides config)"`
	LogFormat string `name:"log-format" help:"Log format: text or json (overrides config)"`

	Meta    MetaCmd    `cmd:"" help:"Print the header, keywords and fingerprints of a file"`
	CSV     CSVCmd     `cmd:"" name:"csv" help:"Export the events of a file as a delimited table"`
	Rewrite RewriteCmd `cmd:"" help:"Decode a file and encode it again with a compact layout"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// app is bound into every command's Run method.
type app struct {
	stdout io.Writer
	logger *slog.Logger
	config *config.Config
}

// settings merges the configuration file, if any, with the global flags.
func (c *CLI) settings() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.Config != "" {
		loaded, err := config.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Logging.Format = c.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("fcs"),
		kong.Description("Inspect, export and rewrite Flow Cytometry Standard (FCS) files"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.settings()
	if err != nil {
		return err
	}

	level, err := cfg.LoggingLevel()
	if err != nil {
		return err
	}
	format, err := cfg.LoggingFormat()
	if err != nil {
		return err
	}
	logger := logging.InitLogger(stderr, level, format)

	return ctx.Run(&app{stdout: stdout, logger: logger, config: cfg})
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "fcs: %v\n", err)
		os.Exit(1)
	}
}
