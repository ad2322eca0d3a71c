package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/tp/internal/patch"
)

const helpFlag = "--help"

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < 2 {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := patch.LoadConfig(patch.LoadConfigInput{
		WorkDirOverride:   flags.workDir,
		ConfigPath:        flags.configPath,
		BackupExtOverride: flags.backupExt,
		Env:               env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	ioCtx := NewIO(stdin, out, errOut, isTerminal(stdin))

	for _, cmd := range commands(&cfg) {
		if cmd.Name() == name {
			return cmd.Run(ctx, ioCtx, flags.remaining[1:])
		}
	}

	fprintln(errOut, "error: unknown command:", name)
	printUsage(errOut)

	return 1
}

// commands returns every registered command. Order matters: it is the help
// listing order.
func commands(cfg *patch.Config) []*Command {
	return []*Command{
		TruncateCmd(cfg),
		SpliceCmd(cfg),
		InsertCmd(cfg),
		ApplyCmd(cfg),
		PrintConfigCmd(cfg),
	}
}

// isTerminal reports whether stdin is a real terminal so prompts can be
// offered. Tests pass buffers and stay non-interactive.
func isTerminal(stdin io.Reader) bool {
	file, ok := stdin.(*os.File)

	return ok && file == os.Stdin && liner.TerminalSupported()
}

type globalFlags struct {
	workDir    string
	configPath string
	backupExt  string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns number of args
// consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	set := func(target *string, long, short string) (int, error) {
		if arg == long || (short != "" && arg == short) {
			if idx+1 >= len(args) {
				return 0, fmt.Errorf("flag requires an argument: %s", arg)
			}

			*target = args[idx+1]

			return 2, nil
		}

		if after, ok := strings.CutPrefix(arg, long+"="); ok {
			*target = after

			return 1, nil
		}

		return 0, nil
	}

	for _, candidate := range []struct {
		target *string
		long   string
		short  string
	}{
		{&flags.workDir, "--cwd", "-C"},
		{&flags.configPath, "--config", "-c"},
		{&flags.backupExt, "--backup-ext", ""},
	} {
		consumed, err := set(candidate.target, candidate.long, candidate.short)
		if err != nil || consumed > 0 {
			return consumed, err
		}
	}

	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	if strings.HasPrefix(arg, "-") && arg != "-" {
		return 0, fmt.Errorf("unknown flag: %s", arg)
	}

	// Not a flag
	return 0, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `tp - anchor-based text patcher

Usage: tp [options] <command> [args]

Options:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
  --backup-ext <ext>    Back up targets to <path><ext> before writing

Commands:`)

	for _, cmd := range commands(&patch.Config{}) {
		fprintln(writer, cmd.HelpLine())
	}
}
