package agent

import (
	"fmt"
	"time"

	"github.com/rotina/rotina/internal/provider"
	"github.com/rotina/rotina/internal/session"
)

const systemPromptTemplate = `You are Rotina, a friendly personal assistant that manages the user's daily routine.

The current date and time is %s.

You have tools to read and edit the routine, look up what the user should be doing at a given time, remember favorites, check the weather, and tell a joke. Use them whenever they apply instead of guessing. Routine times are in 24-hour HH:MM format.

Keep replies short and conversational. They may be spoken aloud, so avoid lists, markdown and code blocks. When a tool reports an error, explain the problem in plain words and suggest what to try instead.`

func systemPrompt(now time.Time) string {
	return fmt.Sprintf(systemPromptTemplate, now.Format("Monday, January 2 2006, 15:04"))
}

// buildMessages assembles the system prompt plus the recent session
// window for a chat request.
func (l *Loop) buildMessages(sess *session.Session) []provider.Message {
	window := l.opts.Config.Model.HistoryWindow
	historyMsgs := sess.GetHistory(window)

	messages := make([]provider.Message, 0, len(historyMsgs)+1)
	messages = append(messages, provider.Message{Role: "system", Content: systemPrompt(time.Now())})
	for _, m := range historyMsgs {
		messages = append(messages, provider.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}
