package markdown

import "strings"

// BlockMarkers returns the HTML comments fencing the generated block name.
func BlockMarkers(name string) (string, string) {
	return "<!-- studychef:" + name + ":start -->", "<!-- studychef:" + name + ":end -->"
}

// SetBlock replaces the generated block name in the body, or appends it when
// the body has none. Text outside the markers is left alone.
func (n *Note) SetBlock(name, generated string) {
	start, end := BlockMarkers(name)
	block := start + "\n" + strings.TrimRight(generated, "\n") + "\n" + end

	from := strings.Index(n.Body, start)
	to := -1
	if from >= 0 {
		if rel := strings.Index(n.Body[from:], end); rel >= 0 {
			to = from + rel + len(end)
		}
	}
	if to >= 0 {
		n.Body = n.Body[:from] + block + n.Body[to:]
		return
	}

	switch {
	case strings.TrimSpace(n.Body) == "":
		n.Body = block + "\n"
	case strings.HasSuffix(n.Body, "\n"):
		n.Body += "\n" + block + "\n"
	default:
		n.Body += "\n\n" + block + "\n"
	}
}

// Block returns the generated content of block name, if present.
func (n Note) Block(name string) (string, bool) {
	start, end := BlockMarkers(name)
	from := strings.Index(n.Body, start)
	if from < 0 {
		return "", false
	}
	rest := n.Body[from+len(start):]
	to := strings.Index(rest, end)
	if to < 0 {
		return "", false
	}
	return strings.Trim(rest[:to], "\n"), true
}
