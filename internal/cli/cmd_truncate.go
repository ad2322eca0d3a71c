package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tp/internal/patch"
)

// TruncateCmd returns the truncate command.
func TruncateCmd(cfg *patch.Config) *Command {
	flags := flag.NewFlagSet("truncate", flag.ContinueOnError)
	flagAt := flags.String("at", "", "Anchor text to cut at (required)")
	flagOccurrence := flags.String("occurrence", "", "Which match to use: first|last|unique")
	flagDryRun := flags.Bool("dry-run", false, "Print the result to stdout instead of writing")

	return &Command{
		Flags: flags,
		Usage: "truncate <file> --at <anchor> [flags]",
		Short: "Delete everything from an anchor onward",
		Long: `Delete everything from the anchor's match onward, the anchor included.
The remaining prefix is written back atomically; a missing anchor leaves
the file untouched and exits non-zero.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			if *flagAt == "" {
				return errAnchorRequired
			}

			occurrence, err := occurrenceFor(cfg, *flagOccurrence)
			if err != nil {
				return err
			}

			loc := patch.Locator{Text: *flagAt, Occurrence: occurrence}

			return patchFile(o, cfg, args[0], *flagDryRun, func(doc patch.Document) (patch.Document, error) {
				return patch.TruncateAt(doc, loc)
			})
		},
	}
}
