package format

import (
	"strconv"
	"time"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

const previewLen = 60

func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLen {
		return s
	}
	return string(runes[:previewLen]) + "..."
}

func stamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// ActivityList renders activity records as a table.
type ActivityList []models.Activity

func (l ActivityList) Headers() []string {
	return []string{"ID", "TYPE", "CREATED", "PROMPT"}
}

func (l ActivityList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, a := range l {
		prompt := a.Data["prompt"]
		if prompt == "" {
			prompt = a.Data["text"]
		}
		if prompt == "" {
			prompt = a.Data["editPrompt"]
		}
		rows = append(rows, []string{a.ID, string(a.Type), stamp(a.CreatedAt), preview(prompt)})
	}
	return rows
}

// ChatList renders chat sessions as a table.
type ChatList []models.ChatSession

func (l ChatList) Headers() []string {
	return []string{"ID", "TITLE", "CREATED"}
}

func (l ChatList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		rows = append(rows, []string{c.ID, c.Title, stamp(c.CreatedAt)})
	}
	return rows
}

// MessageList renders a chat transcript as a table.
type MessageList []models.ChatMessage

func (l MessageList) Headers() []string {
	return []string{"ROLE", "TIME", "MESSAGE"}
}

func (l MessageList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, m := range l {
		rows = append(rows, []string{string(m.Role), stamp(m.CreatedAt), preview(m.Text)})
	}
	return rows
}

// TripList renders planned trips as a table.
type TripList []models.Trip

func (l TripList) Headers() []string {
	return []string{"ID", "ROUTE", "DAYS", "CREATED"}
}

func (l TripList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, t := range l {
		rows = append(rows, []string{
			t.ID,
			t.Origin + " - " + t.Destination,
			strconv.Itoa(t.Days),
			stamp(t.CreatedAt),
		})
	}
	return rows
}
