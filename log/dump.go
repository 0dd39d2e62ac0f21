package log

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Custom dumper for log-friendly, compact output.
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true, // Cleaner for logs
	DisableCapacities:       true, // Less noise
	SortKeys:                true, // Consistent map output
}

// Dump logs a one-line structure dump of v at the given level. Meant for
// debugging compound values where %v loses type information.
func (l *Logger) Dump(level Level, label string, v any) {
	l.output(level, skipDirect, "%s = %s", label, sdump(v))
}

func sdump(v any) string {
	return strings.TrimRight(dumper.Sdump(v), "\n")
}
