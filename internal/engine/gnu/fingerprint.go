package gnu

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/autobuild/internal/core/domain"
)

// Fingerprint derives the cache key of a wrapped build: the configure command,
// the build command and the sorted names of the configured environment
// variables, minus the bypass key.
//
// Only variable names take part. Changing the value of an existing variable
// does not change the fingerprint.
func Fingerprint(c *Composer, env map[string]string) string {
	names := slices.Sorted(maps.Keys(env))
	names = slices.DeleteFunc(names, func(name string) bool {
		return name == domain.BypassEnvKey
	})

	var sb strings.Builder
	sb.WriteString(formatArgv(c.ConfigureCommand()))
	sb.WriteString(formatArgv(c.BuildCommand()))
	sb.WriteString(formatNames(names))
	return sb.String()
}

func formatArgv(argv []string) string {
	if argv == nil {
		return "None"
	}
	return "[" + joinQuoted(argv) + "]"
}

func formatNames(names []string) string {
	if len(names) == 1 {
		return "(" + strconv.Quote(names[0]) + ",)"
	}
	return "(" + joinQuoted(names) + ")"
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return strings.Join(quoted, ", ")
}
