// Package debugdump prints EXIN's identifier and object tables, adapted
// from the teacher's vmDumper (which walked a VM's dictionary and memory
// image): here there is no flat memory to walk, so it walks a scope.Scope's
// frames instead, each holding its own linked identifier list.
package debugdump

import (
	"fmt"
	"io"
	"sort"

	"exin/internal/scope"
)

// Dump writes sc's global and (if active) local frame to w, one identifier
// per line, sorted by name within each frame.
func Dump(w io.Writer, sc *scope.Scope) {
	fmt.Fprintf(w, "# Identifier table (depth %d)\n", sc.Depth())
	fmt.Fprintln(w, "## global")
	dumpFrame(w, sc.Global())
	if local := sc.Local(); local != sc.Global() {
		fmt.Fprintln(w, "## local")
		dumpFrame(w, local)
	}
}

func dumpFrame(w io.Writer, f *scope.Frame) {
	var lines []string
	f.Each(func(id *scope.Identifier) {
		switch id.Kind {
		case scope.Function:
			lines = append(lines, fmt.Sprintf("  func %s/%d", id.Name, len(id.Func.Formals)))
		default:
			val := "<unbound>"
			if id.Object != nil {
				val = id.Object.GoString()
			}
			lines = append(lines, fmt.Sprintf("  var %s = %s", id.Name, val))
		}
	})
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
