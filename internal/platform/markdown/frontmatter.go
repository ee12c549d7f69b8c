package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Note is a markdown document with an optional YAML frontmatter header.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// fence is all body. CRLF line endings are normalized.
func Parse(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence)+1:]
	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n"+fence) {
				return Note{}, fmt.Errorf("frontmatter is not closed")
			}
			idx = len(rest) - len(fence) - 1
			raw, body = rest[:idx], ""
		} else {
			raw, body = rest[:idx], rest[idx+len(fence)+2:]
		}
	}

	meta := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
			return Note{}, fmt.Errorf("decode frontmatter: %w", err)
		}
	}
	return Note{Meta: meta, Body: body}, nil
}

// Render writes the note back with keys in sorted order.
func (n Note) Render() (string, error) {
	buf := bytes.Buffer{}
	if len(n.Meta) > 0 {
		raw, err := yaml.Marshal(n.Meta)
		if err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
		buf.WriteString(fence + "\n")
		buf.Write(raw)
		buf.WriteString(fence + "\n")
		if !strings.HasPrefix(n.Body, "\n") {
			buf.WriteString("\n")
		}
	}
	buf.WriteString(n.Body)
	return buf.String(), nil
}

// Int reads a numeric header value, zero when absent or not a number.
func (n Note) Int(key string) int {
	switch v := n.Meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Strings reads a list header value, skipping non-string items.
func (n Note) Strings(key string) []string {
	items, ok := n.Meta[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Add increments a numeric header value by delta.
func (n *Note) Add(key string, delta int) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	n.Meta[key] = n.Int(key) + delta
}
