package gnu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/engine/gnu"
)

func newComposer(t *testing.T, opts domain.Options) *gnu.Composer {
	t.Helper()
	cfg, err := domain.NewConfiguration(opts)
	require.NoError(t, err)
	return gnu.NewComposer(cfg)
}

func TestComposer_ConfigureCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts domain.Options
		want []string
	}{
		{
			name: "no configure script",
			opts: domain.Options{WorkingDir: "zlib", MakeBinary: "make"},
			want: nil,
		},
		{
			name: "executed directly",
			opts: domain.Options{
				Configure:     "vendor/zlib/configure",
				ConfigureArgs: []string{"--prefix=/opt/zlib", "--shared"},
				MakeBinary:    "make",
			},
			want: []string{"./configure", "--prefix=/opt/zlib", "--shared"},
		},
		{
			name: "through an interpreter",
			opts: domain.Options{
				Configure:     "vendor/openssl/Configure",
				Interpreter:   "perl",
				ConfigureArgs: []string{"linux-x86_64"},
				MakeBinary:    "make",
			},
			want: []string{"perl", "Configure", "linux-x86_64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, newComposer(t, tt.opts).ConfigureCommand())
		})
	}
}

func TestComposer_BuildCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts domain.Options
		want []string
	}{
		{
			name: "default install target",
			opts: domain.Options{WorkingDir: "w", MakeBinary: "make"},
			want: []string{"make", "install"},
		},
		{
			name: "custom build arguments",
			opts: domain.Options{WorkingDir: "w", MakeBinary: "gmake", BuildArgs: []string{"-j4", "all"}},
			want: []string{"gmake", "-j4", "all"},
		},
		{
			name: "makefile override keeps install",
			opts: domain.Options{WorkingDir: "w", MakeBinary: "make", Makefile: "Makefile.shared"},
			want: []string{"make", "-f", "Makefile.shared", "install", "install"},
		},
		{
			name: "makefile override with explicit arguments",
			opts: domain.Options{
				WorkingDir: "w",
				MakeBinary: "make",
				Makefile:   "win32/Makefile.gcc",
				BuildArgs:  []string{"SHARED_MODE=1"},
			},
			want: []string{"make", "-f", "win32/Makefile.gcc", "install", "SHARED_MODE=1"},
		},
		{
			name: "empty build arguments",
			opts: domain.Options{WorkingDir: "w", MakeBinary: "make", BuildArgs: []string{}},
			want: []string{"make"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, newComposer(t, tt.opts).BuildCommand())
		})
	}
}

func TestComposer_Deterministic(t *testing.T) {
	t.Parallel()

	c := newComposer(t, domain.Options{
		Configure:     "zlib/configure",
		ConfigureArgs: []string{"--static"},
		MakeBinary:    "make",
		BuildArgs:     []string{"install", "V=1"},
	})

	first := c.BuildCommand()
	second := c.BuildCommand()
	assert.Equal(t, first, second)

	// Mutating a returned command must not leak into the next one.
	first[0] = "mutated"
	assert.Equal(t, []string{"make", "install", "V=1"}, c.BuildCommand())
	assert.Equal(t, c.ConfigureCommand(), c.ConfigureCommand())
}
