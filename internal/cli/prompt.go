package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// confirm asks a yes/no question on the terminal. Ctrl-C and EOF count as no.
func confirm(question string) (bool, error) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(question)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}

		return false, fmt.Errorf("reading input: %w", err)
	}

	answer = strings.TrimSpace(strings.ToLower(answer))

	return answer == "yes" || answer == "y", nil
}
