// Package translate localizes the user-visible strings of tenjit.
//
// Messages are keyed by their en-US fmt format string. The output language
// is taken from TENJIT_LANG when set, otherwise from the OS locale.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// LANG_ENV overrides the detected locale.
const LANG_ENV = "TENJIT_LANG"

var printer *message.Printer

func init() {
	printer = message.NewPrinter(message.MatchLanguage(languages()...))
}

// languages returns the preferred languages, most preferred first.
func languages() (langs []string) {
	if env := os.Getenv(LANG_ENV); len(env) != 0 {
		langs = append(langs, env)
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tenjit: locale: %v", err)
	}
	langs = append(langs, locales...)

	if len(langs) == 0 {
		langs = []string{"en-US"}
	}

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
