// Package translate formats user-facing text for the user's locale.
// Numbers are grouped the way the locale expects; text without a catalog
// entry is printed as written.
package translate

import (
	"errors"
	"io"
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

var printer = newPrinter()

func newPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("locale: %v", err)
	}
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf() format in the user's language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Errorf returns an error whose text is the translated message.
func Errorf(key message.Reference, args ...any) error {
	return errors.New(printer.Sprintf(key, args...))
}

// Fprintf writes a translated message to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) {
	printer.Fprintf(w, key, args...)
}
