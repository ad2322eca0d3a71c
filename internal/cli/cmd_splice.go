package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tp/internal/patch"
)

// SpliceCmd returns the splice command.
func SpliceCmd(cfg *patch.Config) *Command {
	flags := flag.NewFlagSet("splice", flag.ContinueOnError)
	flagStart := flags.String("start", "", "Start anchor; its match is consumed (required)")
	flagEnd := flags.String("end", "", "End anchor; its match is retained (required)")
	flagStartOccurrence := flags.String("start-occurrence", "", "Which start match to use: first|last|unique")
	flagEndOccurrence := flags.String("end-occurrence", "", "Which end match to use: first|last|unique")
	flagPayload := flags.String("payload", "", "Replacement text")
	flagPayloadFile := flags.String("payload-file", "", "File holding the replacement text")
	flagDryRun := flags.Bool("dry-run", false, "Print the result to stdout instead of writing")

	return &Command{
		Flags: flags,
		Usage: "splice <file> --start <anchor> --end <anchor> [flags]",
		Short: "Replace the region between two anchors",
		Long: `Replace everything from the start anchor's match up to (but not including)
the end anchor's match with the payload. The payload comes from --payload,
--payload-file, or stdin. An end anchor that matches before the start
anchor is an error, as is a missing anchor; either way the file is left
untouched.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errFileRequired
			}

			if *flagStart == "" || *flagEnd == "" {
				return errAnchorRequired
			}

			startOccurrence, err := occurrenceFor(cfg, *flagStartOccurrence)
			if err != nil {
				return err
			}

			endOccurrence, err := occurrenceFor(cfg, *flagEndOccurrence)
			if err != nil {
				return err
			}

			payload, err := readPayload(o, cfg, *flagPayload, *flagPayloadFile)
			if err != nil {
				return err
			}

			start := patch.Locator{Text: *flagStart, Occurrence: startOccurrence}
			end := patch.Locator{Text: *flagEnd, Occurrence: endOccurrence}

			return patchFile(o, cfg, args[0], *flagDryRun, func(doc patch.Document) (patch.Document, error) {
				return patch.SpliceBetween(doc, start, end, payload)
			})
		},
	}
}
