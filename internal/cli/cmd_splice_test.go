package cli_test

import (
	"testing"

	"github.com/calvinalkan/tp/internal/cli"
)

func Test_Splice_Command(t *testing.T) {
	t.Parallel()

	t.Run("replaces region with inline payload", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "ABC<X/>DEF<Y/>GHI")

		c.MustRun("splice", "modal.tsx", "--start", "<X/>", "--end", "<Y/>", "--payload", "-PATCH-")

		if got, want := readFile(t, path), "ABC-PATCH-<Y/>GHI"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("payload from file", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "a<s>old<e>b")
		writeFile(t, c, "block.txt", "NEW\n")

		c.MustRun("splice", "modal.tsx", "--start", "<s>", "--end", "<e>", "--payload-file", "block.txt")

		if got, want := readFile(t, path), "aNEW\n<e>b"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("payload from stdin", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "a<s>old<e>b")

		_, stderr, code := c.RunWithInput("FROM-STDIN", "splice", "modal.tsx", "--start", "<s>", "--end", "<e>")
		if code != 0 {
			t.Fatalf("exit code=%d, stderr=%s", code, stderr)
		}

		if got, want := readFile(t, path), "aFROM-STDIN<e>b"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("payload and payload-file conflict", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		writeFile(t, c, "modal.tsx", "a<s>x<e>b")

		stderr := c.MustFail("splice", "modal.tsx", "--start", "<s>", "--end", "<e>",
			"--payload", "p", "--payload-file", "f.txt")
		cli.AssertContains(t, stderr, "mutually exclusive")
	})

	t.Run("missing end anchor names the end locator", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "a<s>b")

		stderr := c.MustFail("splice", "modal.tsx", "--start", "<s>", "--end", "<e>", "--payload", "-")
		cli.AssertContains(t, stderr, "end anchor")
		cli.AssertContains(t, stderr, "locator not found")

		if got, want := readFile(t, path), "a<s>b"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("end before start rejected", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		writeFile(t, c, "modal.tsx", "a<e>b<s>c")

		stderr := c.MustFail("splice", "modal.tsx", "--start", "<s>", "--end", "<e>", "--payload", "-")
		cli.AssertContains(t, stderr, "end locator matches before start locator")
	})

	t.Run("last occurrence end anchor mirrors footer-from-the-back edits", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "head<s>body<footer>x<footer>tail")

		c.MustRun("splice", "modal.tsx", "--start", "<s>", "--end", "<footer>",
			"--end-occurrence", "last", "--payload", "NEW")

		if got, want := readFile(t, path), "headNEW<footer>tail"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("dry run leaves file untouched", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "modal.tsx", "a<s>x<e>b")

		stdout, stderr, code := c.Run("splice", "modal.tsx", "--start", "<s>", "--end", "<e>",
			"--payload", "-", "--dry-run")
		if code != 0 {
			t.Fatalf("exit code=%d, stderr=%s", code, stderr)
		}

		if got, want := stdout, "a-<e>b"; got != want {
			t.Errorf("stdout=%q, want=%q", got, want)
		}

		if got, want := readFile(t, path), "a<s>x<e>b"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})
}
