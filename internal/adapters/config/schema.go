package config

// Buildfile represents the structure of autobuild.yaml and autobuild.toml.
type Buildfile struct {
	Version string             `yaml:"version" toml:"version"`
	Root    string             `yaml:"root"    toml:"root"`
	Nodes   map[string]NodeDTO `yaml:"nodes"   toml:"nodes"`
}

// NodeDTO represents a wrapped configure/make build in the buildfile.
type NodeDTO struct {
	Configure     string            `yaml:"configure"      toml:"configure"`
	Interpreter   string            `yaml:"interpreter"    toml:"interpreter"`
	ConfigureArgs []string          `yaml:"configure_args" toml:"configure_args"`
	WorkingDir    string            `yaml:"working_dir"    toml:"working_dir"`
	Make          string            `yaml:"make"           toml:"make"`
	Makefile      string            `yaml:"makefile"       toml:"makefile"`
	BuildArgs     []string          `yaml:"build_args"     toml:"build_args"`
	Env           map[string]string `yaml:"env"            toml:"env"`
	LeaveStdout   bool              `yaml:"leave_stdout"   toml:"leave_stdout"`
	Sources       []string          `yaml:"sources"        toml:"sources"`
	Targets       []TargetDTO       `yaml:"targets"        toml:"targets"`
	DependsOn     []string          `yaml:"depends_on"     toml:"depends_on"`
}

// TargetDTO represents a declared build product.
type TargetDTO struct {
	Path string `yaml:"path" toml:"path"`
	Kind string `yaml:"kind" toml:"kind"`
}
