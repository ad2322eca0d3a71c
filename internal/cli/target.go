package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/calvinalkan/tp/internal/patch"
)

var (
	errFileRequired    = errors.New("target file is required")
	errAnchorRequired  = errors.New("anchor is required")
	errPayloadRequired = errors.New("payload is required (--payload, --payload-file, or stdin)")
	errPayloadConflict = errors.New("--payload and --payload-file are mutually exclusive")
	errPlanRequired    = errors.New("plan file is required")
)

// resolvePath makes path absolute against the effective working directory.
func resolvePath(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cwd, path)
}

// occurrenceFor resolves the per-command occurrence flag against the
// configured default.
func occurrenceFor(cfg *patch.Config, flagValue string) (patch.Occurrence, error) {
	if flagValue == "" {
		return cfg.DefaultOccurrence, nil
	}

	return patch.ParseOccurrence(flagValue)
}

// patchFile runs transform against the file at path. With dryRun the result
// goes to stdout and the file is never opened for writing; otherwise the
// transform runs under the target's lock and the result is persisted
// atomically.
func patchFile(o *IO, cfg *patch.Config, path string, dryRun bool, transform func(patch.Document) (patch.Document, error)) error {
	abs := resolvePath(cfg.EffectiveCwd, path)

	if dryRun {
		content, readErr := os.ReadFile(abs)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", abs, readErr)
		}

		newDoc, transformErr := transform(patch.Document(content))
		if transformErr != nil {
			return transformErr
		}

		o.Printf("%s", newDoc)

		return nil
	}

	return patch.Rewrite(abs, patch.PersistOptions{BackupExt: cfg.BackupExt}, transform)
}

// readPayload resolves the payload from --payload, --payload-file, or stdin,
// in that order of preference. Setting both flags is an error; setting
// neither reads stdin to EOF.
func readPayload(o *IO, cfg *patch.Config, payload, payloadFile string) (string, error) {
	if payload != "" && payloadFile != "" {
		return "", errPayloadConflict
	}

	if payload != "" {
		return payload, nil
	}

	if payloadFile != "" {
		data, err := os.ReadFile(resolvePath(cfg.EffectiveCwd, payloadFile))
		if err != nil {
			return "", fmt.Errorf("reading payload file: %w", err)
		}

		return string(data), nil
	}

	if o.In() == nil || o.Interactive() {
		// Don't silently block waiting for a terminal user to type a payload.
		return "", errPayloadRequired
	}

	data, err := io.ReadAll(o.In())
	if err != nil {
		return "", fmt.Errorf("reading payload from stdin: %w", err)
	}

	return string(data), nil
}
