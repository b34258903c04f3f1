package runtime

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Config describes how to launch the plugin runtime.
type Config struct {
	Command string
	Args    []string
	Env     map[string]string
	Dir     string
}

// Process is a spawned plugin runtime and its connection.
type Process struct {
	*Conn
	cmd *exec.Cmd
}

// Spawn starts the plugin runtime with stdin/stdout as the connection.
// The connection is not started; pass it to NewHost.
func Spawn(ctx context.Context, cfg Config) (*Process, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("runtime command is not configured")
	}

	cmd := exec.CommandContext(ctx, ExpandEnv(cfg.Command), ExpandEnvSlice(cfg.Args)...)
	cmd.Env = BuildEnv(cfg.Env)
	cmd.Dir = cfg.Dir

	// Set up process group for clean termination
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	// Plugin console output goes to our stderr for debugging
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, fmt.Errorf("failed to start plugin runtime: %w", err)
	}

	return &Process{Conn: NewConn(stdout, stdin), cmd: cmd}, nil
}

// Close closes the connection and terminates the process.
func (p *Process) Close() error {
	_ = p.Conn.Close()

	if p.cmd.Process == nil {
		return nil
	}

	// Try graceful shutdown first
	_ = p.cmd.Process.Signal(syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- p.cmd.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = p.cmd.Process.Kill()
		<-done
	}
	return nil
}
