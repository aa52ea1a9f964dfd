package domain

// Command is one external process invocation issued by a build node.
type Command struct {
	// Label describes the step for logs and error reports (e.g. "Build vendor/zlib").
	Label string
	// Argv is the program followed by its arguments.
	Argv []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is the complete environment in "KEY=VALUE" form; nil inherits the process environment.
	Env []string
	// LeaveStdout streams the command output to the terminal instead of the logger.
	LeaveStdout bool
}
