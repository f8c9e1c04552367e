// builtin_console.go: the console host object.
//
// Output goes through an injected io.Writer so tests can capture it; the
// interpreter wires os.Stdout by default. console.size reports the terminal
// dimensions of stdout, or undefined when stdout is not a terminal.
package scope

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// NewConsole builds the console namespace writing to out.
func NewConsole(out io.Writer) *Object {
	c := NewObject()

	c.Set("log", NativeVal(NewNativeFunction(func(_ Value, args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = DisplayString(a)
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return Undefined
	})))

	c.Set("size", NativeVal(NewStaticNativeFunction(func(_ ...Value) Value {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return Undefined
		}
		return ObjectVal(NewObjectOf(map[string]Value{
			"columns": Number(float64(cols)),
			"rows":    Number(float64(rows)),
		}))
	})))

	return c
}
