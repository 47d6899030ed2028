package notifications

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	minutesRemainingKey = "%d minutes remaining"
	secondsRemainingKey = "%d seconds remaining"
)

var printer = newPrinter(language.English)

func newPrinter(tag language.Tag) *message.Printer {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	mustSet(builder, language.English, minutesRemainingKey, plural.Selectf(1, "%d",
		"=1", "%d minute remaining",
		"other", "%d minutes remaining",
	))
	mustSet(builder, language.English, secondsRemainingKey, plural.Selectf(1, "%d",
		"=1", "%d second remaining",
		"other", "%d seconds remaining",
	))
	return message.NewPrinter(tag, message.Catalog(builder))
}

func mustSet(builder *catalog.Builder, tag language.Tag, key string, msg catalog.Message) {
	if err := builder.Set(tag, key, msg); err != nil {
		panic(err)
	}
}

func minutesRemaining(minutes int) string {
	return printer.Sprintf(minutesRemainingKey, minutes)
}

func secondsRemaining(seconds int) string {
	return printer.Sprintf(secondsRemainingKey, seconds)
}
