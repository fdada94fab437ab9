package mandel

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// elapsedPrinter formats timing captions with English digit grouping.
var elapsedPrinter = message.NewPrinter(language.English)

// FormatElapsed renders d as the caption shown over a finished image,
// whole milliseconds with digit grouping: "1,234 milliseconds".
func FormatElapsed(d time.Duration) string {
	return elapsedPrinter.Sprintf("%d milliseconds", d.Milliseconds())
}
