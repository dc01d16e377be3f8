package stacktrace

import (
	"strings"

	"github.com/samber/lo"
)

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" frames of a raw
// debug.Stack dump, innermost first. Frames outside this module's internal
// tree (runtime, stdlib, third-party) are dropped.
func InternalPaths(stack []byte) []string {
	return lo.FilterMap(strings.Split(string(stack), "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)

		file, rest, ok := strings.Cut(line, ".go:")
		if !ok {
			return "", false
		}

		_, rel, ok := strings.Cut(file, "/internal/")
		if !ok {
			return "", false
		}

		lineNo, _, _ := strings.Cut(rest, " ")
		return "internal/" + rel + ".go:" + lineNo, true
	})
}
