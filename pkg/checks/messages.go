package checks

import "fmt"

// messages is the bundle of violation message templates by key.
var messages = map[string]string{
	"class.implied.modifier":     "Implied modifier '%s' should be explicit.",
	"interface.implied.modifier": "Implied modifier '%s' should be explicit.",
	"mod.order":                  "'%s' modifier out of order with the JLS suggestions.",
	"annotation.order":           "'%s' annotation modifier does not precede non-annotation modifiers.",
}

// MessageText renders the template for key with the given args. Unknown keys
// render as the key itself, so a missing bundle entry stays visible instead
// of hiding the violation.
func MessageText(key string, args ...any) string {
	tmpl, ok := messages[key]
	if !ok {
		return key
	}

	return fmt.Sprintf(tmpl, args...)
}
