package cli_test

import (
	"testing"

	"github.com/calvinalkan/tp/internal/cli"
)

func Test_Insert_Command(t *testing.T) {
	t.Parallel()

	t.Run("after anchor", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "a.txt", "x<m>y")

		c.MustRun("insert", "a.txt", "--after", "<m>", "--payload", "+")

		if got, want := readFile(t, path), "x<m>+y"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("before anchor", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		path := writeFile(t, c, "a.txt", "x<m>y")

		c.MustRun("insert", "a.txt", "--before", "<m>", "--payload", "+")

		if got, want := readFile(t, path), "x+<m>y"; got != want {
			t.Errorf("file content=%q, want=%q", got, want)
		}
	})

	t.Run("after and before are exclusive", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		writeFile(t, c, "a.txt", "x<m>y")

		stderr := c.MustFail("insert", "a.txt", "--after", "<m>", "--before", "<m>", "--payload", "+")
		cli.AssertContains(t, stderr, "exactly one of --after or --before")
	})

	t.Run("neither after nor before", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		writeFile(t, c, "a.txt", "x<m>y")

		stderr := c.MustFail("insert", "a.txt", "--payload", "+")
		cli.AssertContains(t, stderr, "exactly one of --after or --before")
	})

	t.Run("missing payload without stdin", func(t *testing.T) {
		t.Parallel()

		c := cli.NewCLI(t)
		writeFile(t, c, "a.txt", "x<m>y")

		stderr := c.MustFail("insert", "a.txt", "--after", "<m>")
		cli.AssertContains(t, stderr, "payload is required")
	})
}
