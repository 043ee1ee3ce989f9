package viewer

import (
	"context"
	"fmt"
	"os/exec"

	"go.tpnote.dev/tpnote/config"
)

// Launcher starts an external program (editor or browser) as a child
// process and reports when it exits. spec.md §5's external-program
// contract is deliberately synchronous: forking editors make
// synchronization with the dispatcher/viewer impossible, so only
// non-forking, wait-on-exit children are supported.
type Launcher interface {
	// Launch starts command (spec.md §6.3's percent-encoded token
	// format, parsed via config.ParseCommand) with arg appended as its
	// final argument, and returns a channel closed when the child
	// process exits.
	Launch(ctx context.Context, command, arg string) (<-chan struct{}, error)
}

// ProcessLauncher is the real Launcher, backed by os/exec.
type ProcessLauncher struct{}

func (ProcessLauncher) Launch(ctx context.Context, command, arg string) (<-chan struct{}, error) {
	args, err := config.ParseCommand(command)
	if err != nil {
		return nil, fmt.Errorf("viewer: parsing launch command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("viewer: empty launch command")
	}

	args = append(args, arg)

	//nolint:gosec // args come from the user's own configured editor/browser command, not untrusted input.
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("viewer: starting %q: %w", args[0], err)
	}

	done := make(chan struct{})
	go func() {
		cmd.Wait() //nolint:errcheck // exit status isn't actionable here; only exit itself matters.
		close(done)
	}()

	return done, nil
}
