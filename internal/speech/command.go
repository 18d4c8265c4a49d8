package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// CommandSpeaker speaks phrases by shelling out to a system text-to-speech
// binary: `say` on macOS, `espeak` elsewhere, or whatever the configuration
// names.
type CommandSpeaker struct {
	binary    string
	args      []string
	timeoutMs int
}

// NewCommandSpeaker creates a CommandSpeaker for the given binary and fixed
// arguments. The phrase is appended as the final argument. A timeout bounds
// each utterance so a wedged engine cannot pile up processes.
func NewCommandSpeaker(binary string, args []string, timeoutMs int) *CommandSpeaker {
	if binary == "" {
		binary = DefaultBinary()
	}
	if timeoutMs <= 0 {
		timeoutMs = 10000
	}

	return &CommandSpeaker{
		binary:    binary,
		args:      args,
		timeoutMs: timeoutMs,
	}
}

// DefaultBinary returns the platform's usual speech command.
func DefaultBinary() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak"
}

// Speak runs the speech command with the phrase as its last argument.
func (s *CommandSpeaker) Speak(ctx context.Context, phrase string) error {
	if phrase == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.timeoutMs)*time.Millisecond)
	defer cancel()

	args := append(append([]string{}, s.args...), phrase)
	cmd := exec.CommandContext(ctx, s.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("speech timeout after %dms", s.timeoutMs)
	}

	if err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("speech command failed: %w, stderr: %s", err, stderr.String())
		}
		return fmt.Errorf("speech command failed: %w", err)
	}

	return nil
}
