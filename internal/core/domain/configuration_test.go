package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autobuild/internal/core/domain"
)

func TestNewConfiguration_WorkingDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    domain.Options
		want    string
		wantErr error
	}{
		{
			name: "explicit working directory wins",
			opts: domain.Options{Configure: "vendor/zlib/configure", WorkingDir: "build/zlib", MakeBinary: "make"},
			want: "build/zlib",
		},
		{
			name: "derived from configure script",
			opts: domain.Options{Configure: "vendor/zlib/configure", MakeBinary: "make"},
			want: "vendor/zlib",
		},
		{
			name:    "neither configure nor working directory",
			opts:    domain.Options{MakeBinary: "make"},
			wantErr: domain.ErrConfigurationUnresolvable,
		},
		{
			name:    "no make binary",
			opts:    domain.Options{WorkingDir: "w"},
			wantErr: domain.ErrMakeBinaryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := domain.NewConfiguration(tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr.Error())
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.WorkingDir())
		})
	}
}

func TestNewConfiguration_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := domain.NewConfiguration(domain.Options{WorkingDir: "w", MakeBinary: `C:\tools\make.exe`})
	require.NoError(t, err)

	assert.Equal(t, []string{"install"}, cfg.BuildArgs())
	assert.Equal(t, "C:/tools/make.exe", cfg.Env()[domain.MakeEnvKey])
}

func TestNewConfiguration_LeaveStdout(t *testing.T) {
	t.Parallel()

	quiet, err := domain.NewConfiguration(domain.Options{WorkingDir: "w", MakeBinary: "make"})
	require.NoError(t, err)
	assert.False(t, quiet.LeaveStdout())

	streamed, err := domain.NewConfiguration(domain.Options{WorkingDir: "w", MakeBinary: "make", LeaveStdout: true})
	require.NoError(t, err)
	assert.True(t, streamed.LeaveStdout())
}

func TestNewConfiguration_KeepsCallerMake(t *testing.T) {
	t.Parallel()

	cfg, err := domain.NewConfiguration(domain.Options{
		WorkingDir: "w",
		MakeBinary: "gmake",
		Env:        map[string]string{"MAKE": "remake"},
	})
	require.NoError(t, err)
	assert.Equal(t, "remake", cfg.Env()[domain.MakeEnvKey])
}

func TestNewConfiguration_DoesNotAlias(t *testing.T) {
	t.Parallel()

	args := []string{"--prefix=/opt"}
	buildArgs := []string{"all"}
	env := map[string]string{"CFLAGS": "-O2"}
	opts := domain.Options{
		WorkingDir:    "w",
		MakeBinary:    "make",
		ConfigureArgs: args,
		BuildArgs:     buildArgs,
		Env:           env,
	}

	first, err := domain.NewConfiguration(opts)
	require.NoError(t, err)
	second, err := domain.NewConfiguration(opts)
	require.NoError(t, err)

	args[0] = "--prefix=/mutated"
	buildArgs[0] = "mutated"
	env["CFLAGS"] = "-O0"

	assert.Equal(t, []string{"--prefix=/opt"}, first.ConfigureArgs())
	assert.Equal(t, []string{"all"}, first.BuildArgs())
	assert.Equal(t, "-O2", first.Env()["CFLAGS"])

	got := first.BuildArgs()
	got[0] = "changed"
	assert.Equal(t, []string{"all"}, first.BuildArgs())
	assert.Equal(t, []string{"all"}, second.BuildArgs())
}

func TestParseTargetKind(t *testing.T) {
	t.Parallel()

	kind, err := domain.ParseTargetKind("dynlib")
	require.NoError(t, err)
	assert.Equal(t, domain.KindDynamicLibrary, kind)

	kind, err = domain.ParseTargetKind("")
	require.NoError(t, err)
	assert.Equal(t, domain.KindOther, kind)

	_, err = domain.ParseTargetKind("static")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidTargetKind.Error())
}

func TestNode_AllSources(t *testing.T) {
	t.Parallel()

	n := domain.Node{
		Options: domain.Options{Configure: "zlib/configure"},
		Sources: []string{"zlib/zlib.h"},
	}
	assert.Equal(t, []string{"zlib/configure", "zlib/zlib.h"}, n.AllSources())

	n.Options.Configure = ""
	assert.Equal(t, []string{"zlib/zlib.h"}, n.AllSources())
}
