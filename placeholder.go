package localemap

import "regexp"

// placeholderRe matches $name tokens and the $$ escape. Names are limited
// to ASCII letters, digits, underscores, and hyphens.
var placeholderRe = regexp.MustCompile(`\$(\$|[A-Za-z0-9_-]+)`)

// substitute replaces every $name token in the template with its value
// from vars. The $$ escape renders a literal dollar sign. Tokens whose
// name has no value are left as literal text, so authoring mistakes stay
// visible in rendered output instead of disappearing silently.
func substitute(template string, vars map[string]string) string {
	if len(vars) == 0 && !hasEscape(template) {
		return template
	}

	return placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1:]
		if name == "$" {
			return "$"
		}
		if value, ok := vars[name]; ok {
			return value
		}
		return token
	})
}

func hasEscape(template string) bool {
	for i := 0; i+1 < len(template); i++ {
		if template[i] == '$' && template[i+1] == '$' {
			return true
		}
	}
	return false
}
