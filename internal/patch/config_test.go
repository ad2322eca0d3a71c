package patch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/tp/internal/patch"
)

// noGlobalEnv points XDG_CONFIG_HOME at an empty directory so the developer's
// real global config never leaks into tests.
func noGlobalEnv(t *testing.T) map[string]string {
	t.Helper()

	return map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
}

func Test_LoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	t.Run("defaults when no config files exist", func(t *testing.T) {
		t.Parallel()

		cfg, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: t.TempDir(),
			Env:             noGlobalEnv(t),
		})
		require.NoError(t, err)
		require.Equal(t, patch.First, cfg.DefaultOccurrence)
		require.Empty(t, cfg.BackupExt)
		require.Empty(t, cfg.Sources.Global)
		require.Empty(t, cfg.Sources.Project)
	})

	t.Run("project config overrides global", func(t *testing.T) {
		t.Parallel()

		xdg := t.TempDir()
		globalDir := filepath.Join(xdg, "tp")
		require.NoError(t, os.MkdirAll(globalDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.json"),
			[]byte(`{"occurrence": "last", "backup_ext": ".bak"}`), 0o644))

		workDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(workDir, ".tp.json"),
			[]byte(`{"occurrence": "unique"}`), 0o644))

		cfg, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: workDir,
			Env:             map[string]string{"XDG_CONFIG_HOME": xdg},
		})
		require.NoError(t, err)
		require.Equal(t, patch.Unique, cfg.DefaultOccurrence)
		require.Equal(t, ".bak", cfg.BackupExt) // global survives where project is silent
		require.Equal(t, filepath.Join(globalDir, "config.json"), cfg.Sources.Global)
		require.Equal(t, filepath.Join(workDir, ".tp.json"), cfg.Sources.Project)
	})

	t.Run("CLI override beats config files", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(workDir, ".tp.json"),
			[]byte(`{"backup_ext": ".bak"}`), 0o644))

		cfg, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride:   workDir,
			BackupExtOverride: ".orig",
			Env:               noGlobalEnv(t),
		})
		require.NoError(t, err)
		require.Equal(t, ".orig", cfg.BackupExt)
	})

	t.Run("comments and trailing commas allowed", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		content := `{
			// patched files keep an original copy
			"backup_ext": ".orig",
		}`
		require.NoError(t, os.WriteFile(filepath.Join(workDir, ".tp.json"), []byte(content), 0o644))

		cfg, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: workDir,
			Env:             noGlobalEnv(t),
		})
		require.NoError(t, err)
		require.Equal(t, ".orig", cfg.BackupExt)
	})
}

func Test_LoadConfig_Failure_Modes(t *testing.T) {
	t.Parallel()

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		_, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: t.TempDir(),
			ConfigPath:      "nope.json",
			Env:             noGlobalEnv(t),
		})
		require.ErrorIs(t, err, patch.ErrConfigFileNotFound)
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(workDir, ".tp.json"), []byte(`{"occurrence"`), 0o644))

		_, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: workDir,
			Env:             noGlobalEnv(t),
		})
		require.ErrorIs(t, err, patch.ErrConfigInvalid)
	})

	t.Run("invalid occurrence rejected", func(t *testing.T) {
		t.Parallel()

		workDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(workDir, ".tp.json"),
			[]byte(`{"occurrence": "second"}`), 0o644))

		_, err := patch.LoadConfig(patch.LoadConfigInput{
			WorkDirOverride: workDir,
			Env:             noGlobalEnv(t),
		})
		require.ErrorIs(t, err, patch.ErrInvalidOccurrence)
	})
}

func Test_FormatConfig_Serializes_File_Fields_Only(t *testing.T) {
	t.Parallel()

	cfg := patch.Config{Occurrence: "first", BackupExt: ".orig", EffectiveCwd: "/somewhere"}

	formatted, err := patch.FormatConfig(cfg)
	require.NoError(t, err)

	want := "{\n  \"occurrence\": \"first\",\n  \"backup_ext\": \".orig\"\n}"
	if diff := cmp.Diff(want, formatted); diff != "" {
		t.Errorf("formatted config mismatch (-want +got):\n%s", diff)
	}
}
