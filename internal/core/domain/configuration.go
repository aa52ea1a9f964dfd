package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// BypassEnvKey forces a node to rebuild when set; it never enters the fingerprint.
	BypassEnvKey = "AUTOBUILD_RAW"

	// MakeEnvKey is the variable through which recursive makes find the make binary.
	MakeEnvKey = "MAKE"

	// DefaultBuildTarget is the make target run when no build arguments are given.
	DefaultBuildTarget = "install"
)

// Options is the declarative description of a wrapped configure/make build.
// Zero values mean "not set".
type Options struct {
	// Configure is the path of the configure script. Empty skips the configure phase.
	Configure string
	// Interpreter runs the configure script (e.g. "sh") instead of executing it directly.
	Interpreter string
	// ConfigureArgs are appended to the configure command in order.
	ConfigureArgs []string
	// WorkingDir is where configure and make run. Defaults to the directory of Configure.
	WorkingDir string
	// MakeBinary is the make-compatible tool.
	MakeBinary string
	// Makefile overrides the makefile passed with -f.
	Makefile string
	// BuildArgs are the make arguments. Nil means ["install"].
	BuildArgs []string
	// Env holds additional environment entries.
	Env map[string]string
	// LeaveStdout streams configure and make output to the terminal
	// instead of forwarding it line by line to the logger.
	LeaveStdout bool
}

// Configuration is the immutable, validated form of Options.
// Accessors hand out copies; a Configuration never shares storage with its caller.
type Configuration struct {
	configure     string
	interpreter   string
	configureArgs []string
	workingDir    string
	makeBinary    string
	makefile      string
	buildArgs     []string
	env           map[string]string
	leaveStdout   bool
}

// NewConfiguration validates opts and copies them into a Configuration.
func NewConfiguration(opts Options) (*Configuration, error) {
	workingDir := opts.WorkingDir
	if workingDir == "" {
		if opts.Configure == "" {
			return nil, zerr.With(ErrConfigurationUnresolvable, "reason", "no configure script")
		}
		workingDir = filepath.Dir(opts.Configure)
	}

	if opts.MakeBinary == "" {
		return nil, ErrMakeBinaryNotFound
	}

	buildArgs := []string{DefaultBuildTarget}
	if opts.BuildArgs != nil {
		buildArgs = slices.Clone(opts.BuildArgs)
	}

	env := make(map[string]string, len(opts.Env)+1)
	maps.Copy(env, opts.Env)
	if _, ok := env[MakeEnvKey]; !ok {
		env[MakeEnvKey] = strings.ReplaceAll(opts.MakeBinary, `\`, "/")
	}

	return &Configuration{
		configure:     opts.Configure,
		interpreter:   opts.Interpreter,
		configureArgs: slices.Clone(opts.ConfigureArgs),
		workingDir:    filepath.Clean(workingDir),
		makeBinary:    opts.MakeBinary,
		makefile:      opts.Makefile,
		buildArgs:     buildArgs,
		env:           env,
		leaveStdout:   opts.LeaveStdout,
	}, nil
}

// Configure returns the configure script path, or "" when there is none.
func (c *Configuration) Configure() string { return c.configure }

// Interpreter returns the configure interpreter, or "".
func (c *Configuration) Interpreter() string { return c.interpreter }

// ConfigureArgs returns a copy of the configure arguments.
func (c *Configuration) ConfigureArgs() []string { return slices.Clone(c.configureArgs) }

// WorkingDir returns the resolved working directory.
func (c *Configuration) WorkingDir() string { return c.workingDir }

// MakeBinary returns the make binary.
func (c *Configuration) MakeBinary() string { return c.makeBinary }

// Makefile returns the makefile override, or "".
func (c *Configuration) Makefile() string { return c.makefile }

// BuildArgs returns a copy of the build arguments.
func (c *Configuration) BuildArgs() []string { return slices.Clone(c.buildArgs) }

// Env returns a copy of the additional environment, including the MAKE default.
func (c *Configuration) Env() map[string]string { return maps.Clone(c.env) }

// LeaveStdout reports whether configure and make output bypasses the logger.
func (c *Configuration) LeaveStdout() bool { return c.leaveStdout }
