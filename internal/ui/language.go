package ui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// anyLanguageLabel names the empty language code in the selector.
const anyLanguageLabel = "Any language"

var languageNamer = display.English.Languages()

// languageName returns the English display name for code, e.g. "Portuguese".
// Unknown codes come back upper-cased.
func languageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return anyLanguageLabel
	}
	base, err := language.ParseBase(code)
	if err == nil {
		if name := languageNamer.Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}

// cycleLanguage returns the option after (step 1) or before (step -1) current.
// A current value missing from options restarts at the first option.
func cycleLanguage(options []string, current string, step int) string {
	if len(options) == 0 {
		return ""
	}
	for i, code := range options {
		if code == current {
			n := len(options)
			return options[((i+step)%n+n)%n]
		}
	}
	return options[0]
}
