package widget

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/pkg/answer"
)

// Notifier presents non-blocking issues to the user. It is only called with
// a non-empty Issues value.
type Notifier interface {
	Notify(issues answer.Issues)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(issues answer.Issues)

func (f NotifierFunc) Notify(issues answer.Issues) {
	f(issues)
}

// LogNotifier writes each issue message as a warning.
func LogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NotifierFunc(func(issues answer.Issues) {
		counts := issues.Counts()
		for _, message := range issues.Messages() {
			logger.Warn("answer form issue",
				zap.String("message", message),
				zap.Int("definition", counts["definition"]),
				zap.Int("load", counts["load"]),
				zap.Int("conflict", counts["conflict"]),
			)
		}
	})
}
