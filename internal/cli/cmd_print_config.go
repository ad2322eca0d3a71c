package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tp/internal/patch"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *patch.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := patch.FormatConfig(*cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)

			o.Println("")
			o.Println("# Sources:")

			if cfg.Sources.Global != "" {
				o.Println("#   global:", cfg.Sources.Global)
			}

			if cfg.Sources.Project != "" {
				o.Println("#   project:", cfg.Sources.Project)
			}

			if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
				o.Println("#   (using defaults only)")
			}

			return nil
		},
	}
}
