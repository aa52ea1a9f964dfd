// Package shell provides the executor that runs the external commands of build nodes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// waitDelay bounds how long Wait blocks on output pipes after the process
// group was killed.
const waitDelay = 5 * time.Second

var (
	_ ports.CommandRunner = (*Executor)(nil)
	_ ports.Inspector     = (*Executor)(nil)
)

// Executor implements ports.CommandRunner and ports.Inspector using os/exec.
type Executor struct {
	logger     ports.Logger
	stdout     io.Writer
	isTerminal func() bool
}

// NewExecutor creates a new Executor writing streamed output to os.Stdout.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
		stdout: os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // fd fits in int
		},
	}
}

// WithStdout replaces the destination of streamed output. Streaming to
// anything but a terminal uses plain pipes.
func (e *Executor) WithStdout(w io.Writer, isTerminal bool) *Executor {
	e.stdout = w
	e.isTerminal = func() bool { return isTerminal }
	return e
}

// Run executes cmd and waits for it to finish.
//
// Without LeaveStdout every output line goes to the logger. With LeaveStdout
// stdout is streamed as is, through a PTY when attached to a terminal so
// tools keep their interactive formatting.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) error {
	if len(cmd.Argv) == 0 {
		return nil
	}

	e.logger.Info(cmd.Label)

	c := command(ctx, cmd.Argv, cmd.Dir, cmd.Env)
	if cmd.LeaveStdout && e.isTerminal() {
		return exitError(runPTY(c, e.stdout))
	}
	setProcessGroup(c)

	stdoutLog := &logWriter{logger: e.logger, level: "info"}
	stderrLog := &logWriter{logger: e.logger, level: "warn"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	if cmd.LeaveStdout {
		c.Stdout = e.stdout
	} else {
		c.Stdout = stdoutLog
	}
	c.Stderr = stderrLog

	return exitError(c.Run())
}

// Output runs argv in the current directory and returns its standard output.
func (e *Executor) Output(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, nil
	}

	c := command(ctx, argv, "", nil)
	setProcessGroup(c)

	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		err = exitError(err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return nil, err
	}
	return out, nil
}

// command prepares an exec.Cmd that kills its whole process group when ctx is done.
func command(ctx context.Context, argv []string, dir string, env []string) *exec.Cmd {
	name := argv[0]
	executable := name
	if !strings.ContainsRune(name, filepath.Separator) && env != nil {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // commands come from the buildfile
	c.Args[0] = name
	c.Dir = dir
	c.Env = env
	c.Cancel = func() error {
		return killProcessGroup(c.Process)
	}
	c.WaitDelay = waitDelay
	return c
}

func runPTY(c *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The PTY merges stdout and stderr.
		_, _ = io.Copy(stdout, ptmx)
	}()

	err = c.Wait()
	_ = ptmx.Close()
	<-ioDone
	return err
}

// exitError tags a failed command with its exit code.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r. Remove it.
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == "info" {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
