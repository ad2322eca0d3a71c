package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tp/internal/patch"
)

var errInsertAnchorExclusive = errors.New("exactly one of --after or --before is required")

// InsertCmd returns the insert command.
func InsertCmd(cfg *patch.Config) *Command {
	flags := flag.NewFlagSet("insert", flag.ContinueOnError)
	flagAfter := flags.String("after", "", "Insert payload directly after this anchor's match")
	flagBefore := flags.String("before", "", "Insert payload directly before this anchor's match")
	flagOccurrence := flags.String("occurrence", "", "Which match to use: first|last|unique")
	flagPayload := flags.String("payload", "", "Text to insert")
	flagPayloadFile := flags.String("payload-file", "", "File holding the text to insert")
	flagDryRun := flags.Bool("dry-run", false, "Print the result to stdout instead of writing")

	return &Command{
		Flags: flags,
		Usage: "insert <file> (--after|--before) <anchor> [flags]",
		Short: "Insert a payload next to an anchor",
		Long: `Insert the payload directly after (--after) or before (--before) the
anchor's match. Nothing is removed. The payload comes from --payload,
--payload-file, or stdin.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			if (*flagAfter == "") == (*flagBefore == "") {
				return errInsertAnchorExclusive
			}

			occurrence, err := occurrenceFor(cfg, *flagOccurrence)
			if err != nil {
				return err
			}

			payload, err := readPayload(o, cfg, *flagPayload, *flagPayloadFile)
			if err != nil {
				return err
			}

			return patchFile(o, cfg, args[0], *flagDryRun, func(doc patch.Document) (patch.Document, error) {
				if *flagAfter != "" {
					return patch.InsertAfter(doc, patch.Locator{Text: *flagAfter, Occurrence: occurrence}, payload)
				}

				return patch.InsertBefore(doc, patch.Locator{Text: *flagBefore, Occurrence: occurrence}, payload)
			})
		},
	}
}
