package lingo

import (
	"fmt"
	"strings"
)

// Interpolate substitutes {name} placeholders in template with the text form
// of the matching variable. Placeholders with no matching variable are left
// verbatim so missing data stays visible in output.
//
// The template is scanned exactly once and substituted values are never
// re-scanned, so a variable containing "{other}" cannot trigger further
// expansion.
func Interpolate(template string, vars map[string]any) string {
	if len(vars) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])

		end := strings.IndexByte(template[open:], '}')
		if end < 0 {
			// Unterminated placeholder: emit the rest verbatim.
			b.WriteString(template[open:])
			break
		}
		end += open

		name := template[open+1 : end]
		if v, ok := vars[name]; ok {
			b.WriteString(fmt.Sprint(v))
		} else {
			b.WriteString(template[open : end+1])
		}
		i = end + 1
	}

	return b.String()
}
