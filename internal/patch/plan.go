package patch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Operation kinds accepted in plan files.
const (
	OpTruncate     = "truncate"
	OpSplice       = "splice"
	OpInsertAfter  = "insert_after"
	OpInsertBefore = "insert_before"
)

// Op is one edit in a plan: an operation kind, a target file, the anchors the
// kind requires, and an optional payload. Which locator fields apply depends
// on the kind: At for truncate, Start/End for splice, After/Before for the
// insert kinds.
type Op struct {
	Op          string   `json:"op"`
	Path        string   `json:"path"`
	At          *Locator `json:"at,omitempty"`
	Start       *Locator `json:"start,omitempty"`
	End         *Locator `json:"end,omitempty"`
	After       *Locator `json:"after,omitempty"`
	Before      *Locator `json:"before,omitempty"`
	Payload     string   `json:"payload,omitempty"`
	PayloadFile string   `json:"payload_file,omitempty"`
}

// Plan is an ordered list of edits loaded from a HuJSON plan file. Anchors
// and payloads live in the plan as data, not in code; the reference scripts
// this tool replaces hard-coded both.
type Plan struct {
	Ops []Op `json:"ops"`
}

// LoadPlan reads and validates a plan file. payload_file references are
// resolved relative to the plan file's directory and inlined into Payload, so
// a loaded plan is self-contained.
func LoadPlan(path string) (Plan, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return Plan{}, fmt.Errorf("reading plan %s: %w", path, readErr)
	}

	plan, parseErr := parsePlan(data)
	if parseErr != nil {
		return Plan{}, fmt.Errorf("invalid plan %s: %w", path, parseErr)
	}

	planDir := filepath.Dir(path)

	for i := range plan.Ops {
		op := &plan.Ops[i]

		validateErr := op.validate()
		if validateErr != nil {
			return Plan{}, fmt.Errorf("invalid plan %s: op %d: %w", path, i, validateErr)
		}

		if op.PayloadFile == "" {
			continue
		}

		payloadPath := op.PayloadFile
		if !filepath.IsAbs(payloadPath) {
			payloadPath = filepath.Join(planDir, payloadPath)
		}

		payload, payloadErr := os.ReadFile(payloadPath)
		if payloadErr != nil {
			return Plan{}, fmt.Errorf("invalid plan %s: op %d: reading payload file: %w", path, i, payloadErr)
		}

		op.Payload = string(payload)
		op.PayloadFile = ""
	}

	return plan, nil
}

func parsePlan(data []byte) (Plan, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Plan{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var plan Plan

	unmarshalErr := json.Unmarshal(standardized, &plan)
	if unmarshalErr != nil {
		return Plan{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	if len(plan.Ops) == 0 {
		return Plan{}, ErrPlanNoOps
	}

	return plan, nil
}

// validate checks that the op names a known kind, a target path, the locators
// its kind requires, and a consistent payload source. Locator occurrences are
// parsed here so apply never sees an invalid one.
func (o *Op) validate() error {
	if o.Path == "" {
		return ErrPlanPathRequired
	}

	if o.Payload != "" && o.PayloadFile != "" {
		return ErrPlanPayloadConflict
	}

	var required []*Locator

	switch o.Op {
	case OpTruncate:
		required = []*Locator{o.At}
	case OpSplice:
		required = []*Locator{o.Start, o.End}
	case OpInsertAfter:
		required = []*Locator{o.After}
	case OpInsertBefore:
		required = []*Locator{o.Before}
	default:
		return fmt.Errorf("%w: %q", ErrPlanUnknownOp, o.Op)
	}

	for _, loc := range required {
		if loc == nil || loc.Text == "" {
			return fmt.Errorf("%s: %w", o.Op, ErrLocatorEmpty)
		}

		_, occErr := ParseOccurrence(string(loc.Occurrence))
		if occErr != nil {
			return occErr
		}
	}

	return nil
}

// apply runs the op's transform against doc. Locators without an explicit
// occurrence fall back to the configured default.
func (o Op) apply(doc Document, defaultOccurrence Occurrence) (Document, error) {
	switch o.Op {
	case OpTruncate:
		return TruncateAt(doc, withDefault(o.At, defaultOccurrence))
	case OpSplice:
		return SpliceBetween(doc, withDefault(o.Start, defaultOccurrence), withDefault(o.End, defaultOccurrence), o.Payload)
	case OpInsertAfter:
		return InsertAfter(doc, withDefault(o.After, defaultOccurrence), o.Payload)
	case OpInsertBefore:
		return InsertBefore(doc, withDefault(o.Before, defaultOccurrence), o.Payload)
	default:
		return "", fmt.Errorf("%w: %q", ErrPlanUnknownOp, o.Op)
	}
}

func withDefault(loc *Locator, occurrence Occurrence) Locator {
	if loc == nil {
		return Locator{}
	}

	resolved := *loc
	if resolved.Occurrence == "" {
		resolved.Occurrence = occurrence
	}

	return resolved
}

// resolvePath makes an op path absolute against the effective working directory.
func (o Op) resolvePath(cwd string) string {
	if filepath.IsAbs(o.Path) {
		return o.Path
	}

	return filepath.Join(cwd, o.Path)
}

// Apply runs every operation in order. Each op is one locked
// read-transform-write against its target, so later ops see the results of
// earlier ops on the same file. The first failing op aborts the plan; ops
// already applied stay applied, the failing op's target is left unchanged.
func Apply(plan Plan, cfg Config) error {
	opts := PersistOptions{BackupExt: cfg.BackupExt}

	for i, op := range plan.Ops {
		path := op.resolvePath(cfg.EffectiveCwd)

		err := Rewrite(path, opts, func(doc Document) (Document, error) {
			return op.apply(doc, cfg.DefaultOccurrence)
		})
		if err != nil {
			return fmt.Errorf("op %d (%s %s): %w", i, op.Op, op.Path, err)
		}
	}

	return nil
}

// OpResult is the computed outcome of one op during a dry run.
type OpResult struct {
	Path   string
	Result Document
}

// DryRun computes the result of every operation without writing anything.
// An in-memory overlay stands in for the filesystem so later ops observe
// earlier results on the same path, matching what Apply would do.
func DryRun(plan Plan, cfg Config) ([]OpResult, error) {
	overlay := make(map[string]Document)
	results := make([]OpResult, 0, len(plan.Ops))

	for i, op := range plan.Ops {
		path := op.resolvePath(cfg.EffectiveCwd)

		doc, inOverlay := overlay[path]
		if !inOverlay {
			content, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, fmt.Errorf("op %d (%s %s): reading %s: %w", i, op.Op, op.Path, path, readErr)
			}

			doc = Document(content)
		}

		newDoc, applyErr := op.apply(doc, cfg.DefaultOccurrence)
		if applyErr != nil {
			return nil, fmt.Errorf("op %d (%s %s): %w", i, op.Op, op.Path, applyErr)
		}

		overlay[path] = newDoc
		results = append(results, OpResult{Path: path, Result: newDoc})
	}

	return results, nil
}
