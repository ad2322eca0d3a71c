package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tp/internal/patch"
)

// ApplyCmd returns the apply command.
func ApplyCmd(cfg *patch.Config) *Command {
	flags := flag.NewFlagSet("apply", flag.ContinueOnError)
	flagDryRun := flags.Bool("dry-run", false, "Print each operation's result instead of writing")
	flagYes := flags.BoolP("yes", "y", false, "Skip the confirmation prompt")

	return &Command{
		Flags: flags,
		Usage: "apply <plan> [flags]",
		Short: "Run a plan of patch operations",
		Long: `Run every operation in a HuJSON plan file, in order. Each operation is
one atomic read-transform-write; operations later in the plan see the
results of earlier ones. The plan is validated in full before anything
is written. On a terminal, apply asks for confirmation first unless
--yes is given.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPlanRequired
			}

			plan, err := patch.LoadPlan(resolvePath(cfg.EffectiveCwd, args[0]))
			if err != nil {
				return err
			}

			if *flagDryRun {
				results, dryErr := patch.DryRun(plan, *cfg)
				if dryErr != nil {
					return dryErr
				}

				for i, result := range results {
					o.Printf("--- op %d: %s ---\n", i, result.Path)
					o.Printf("%s", result.Result)
				}

				return nil
			}

			if !*flagYes && o.Interactive() {
				ok, promptErr := confirm(fmt.Sprintf("Apply %d operation(s)? (yes/no): ", len(plan.Ops)))
				if promptErr != nil {
					return promptErr
				}

				if !ok {
					o.Println("Cancelled.")

					return nil
				}
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			applyErr := patch.Apply(plan, *cfg)
			if applyErr != nil {
				return applyErr
			}

			o.Println("applied", len(plan.Ops), "operation(s)")

			return nil
		},
	}
}
