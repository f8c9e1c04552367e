// printer.go: user-facing value rendering.
//
// Two forms: FormatValue is the REPL/debug form (text quoted), and
// DisplayString is the console.log form (top-level text bare). Object keys
// render in sorted order so output is deterministic.
package scope

import (
	"strings"
	"unicode"
)

func isIdentText(s string) bool {
	if s == "" {
		return false
	}
	rs := []rune(s)
	if !(unicode.IsLetter(rs[0]) || rs[0] == '_') {
		return false
	}
	for _, r := range rs[1:] {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}

func quoteText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FormatValue renders v with text quoted, suitable for the REPL result line.
func FormatValue(v Value) string {
	return render(v, true)
}

// DisplayString renders v the way console.log prints it: top-level text is
// bare, nested text inside containers stays quoted.
func DisplayString(v Value) string {
	return render(v, false)
}

func render(v Value, quoted bool) string {
	switch v.Tag {
	case VTUndefined:
		return "undefined"
	case VTNull:
		return "null"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTString:
		if quoted {
			return quoteText(v.Data.(string))
		}
		return v.Data.(string)
	case VTStringObject:
		if quoted {
			return quoteText(v.Data.(*StringObject).Text)
		}
		return v.Data.(*StringObject).Text
	case VTArray:
		items := v.Data.(*Array).Items
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = render(item, true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTObject:
		o := v.Data.(*Object)
		keys := o.Keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			kk := k
			if !isIdentText(k) {
				kk = quoteText(k)
			}
			parts = append(parts, kk+": "+render(o.Entries[k], true))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFunction:
		return "function"
	case VTNative:
		return "function (native)"
	case VTEmpty:
		return "undefined"
	default:
		return "<unknown>"
	}
}
