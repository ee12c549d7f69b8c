package components

import (
	"strings"
	"time"

	"studychef/internal/ui/theme"
)

const maxToasts = 4

type toast struct {
	text    string
	expires time.Time
}

// Toasts is a short queue of transient notices, newest last.
type Toasts struct {
	items []toast
	ttl   time.Duration
}

func NewToasts(ttl time.Duration) Toasts {
	return Toasts{ttl: ttl}
}

// Push adds text shown until now+ttl. The oldest notice drops off once the
// queue is full.
func (t *Toasts) Push(text string, now time.Time) {
	t.items = append(t.items, toast{text: text, expires: now.Add(t.ttl)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Expire drops every notice past its deadline.
func (t *Toasts) Expire(now time.Time) {
	kept := t.items[:0]
	for _, item := range t.items {
		if now.Before(item.expires) {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

func (t Toasts) Len() int { return len(t.items) }

func (t Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.items))
	for _, item := range t.items {
		lines = append(lines, "✦ "+item.text)
	}
	return theme.Toast.Render(strings.Join(lines, "\n"))
}
