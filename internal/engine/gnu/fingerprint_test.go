package gnu_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/autobuild/internal/core/domain"
)

func zlibNode() domain.Node {
	return domain.Node{
		Name: "zlib",
		Options: domain.Options{
			Configure:     "vendor/zlib/configure",
			ConfigureArgs: []string{"--prefix=/opt/zlib", "--shared"},
			MakeBinary:    "make",
			Env:           map[string]string{"CFLAGS": "-O2", domain.BypassEnvKey: "1"},
		},
	}
}

func TestHash_Golden(t *testing.T) {
	h := newHarness(t, domain.OSLinux)

	g := goldie.New(t)
	g.Assert(t, "hash_configure", []byte(h.builder(t, zlibNode()).Hash()))

	node := zlibNode()
	node.Options.Configure = ""
	node.Options.WorkingDir = "vendor/zlib"
	node.Options.Env = nil
	g.Assert(t, "hash_no_configure", []byte(h.builder(t, node).Hash()))
}

func TestHash_IgnoresBypassValue(t *testing.T) {
	h := newHarness(t, domain.OSLinux)

	a := zlibNode()
	b := zlibNode()
	b.Options.Env = map[string]string{"CFLAGS": "-O2", domain.BypassEnvKey: "0"}

	assert.Equal(t, h.builder(t, a).Hash(), h.builder(t, b).Hash())
}

func TestHash_IgnoresBypassPresence(t *testing.T) {
	h := newHarness(t, domain.OSLinux)

	a := zlibNode()
	b := zlibNode()
	b.Options.Env = map[string]string{"CFLAGS": "-O2"}

	assert.Equal(t, h.builder(t, a).Hash(), h.builder(t, b).Hash())
}

func TestHash_IgnoresValues(t *testing.T) {
	h := newHarness(t, domain.OSLinux)

	a := zlibNode()
	b := zlibNode()
	b.Options.Env = map[string]string{"CFLAGS": "-O3", domain.BypassEnvKey: "1"}

	assert.Equal(t, h.builder(t, a).Hash(), h.builder(t, b).Hash())
}

func TestHash_ChangesWithArguments(t *testing.T) {
	h := newHarness(t, domain.OSLinux)
	base := h.builder(t, zlibNode()).Hash()

	mutations := map[string]func(n *domain.Node){
		"configure argument": func(n *domain.Node) { n.Options.ConfigureArgs[1] = "--static" },
		"extra configure argument": func(n *domain.Node) {
			n.Options.ConfigureArgs = append(n.Options.ConfigureArgs, "--debug")
		},
		"build argument":   func(n *domain.Node) { n.Options.BuildArgs = []string{"all"} },
		"interpreter":      func(n *domain.Node) { n.Options.Interpreter = "sh" },
		"makefile":         func(n *domain.Node) { n.Options.Makefile = "Makefile.in" },
		"make binary":      func(n *domain.Node) { n.Options.MakeBinary = "gmake" },
		"new env name":     func(n *domain.Node) { n.Options.Env["LDFLAGS"] = "-s" },
		"removed env name": func(n *domain.Node) { delete(n.Options.Env, "CFLAGS") },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			node := zlibNode()
			mutate(&node)
			assert.NotEqual(t, base, h.builder(t, node).Hash())
		})
	}
}

func TestHash_IgnoresAmbientEnvironment(t *testing.T) {
	h := newHarness(t, domain.OSLinux)
	before := h.builder(t, zlibNode()).Hash()

	h.factory.WithEnviron(func() []string { return []string{"PATH=/bin", "EXTRA=1"} })
	assert.Equal(t, before, h.builder(t, zlibNode()).Hash())
}
