package insight

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// The models are instructed to answer with a literal list, but in practice
// the text comes back either as a JSON array, a python-style list with
// single quotes, or wrapped in a markdown code fence. Parsing failures are
// surfaced to the caller as recoverable errors; nothing is persisted from an
// answer that does not parse.

// ParseSituation splits a generated situation answer into the question and
// its four options. Any other shape is a parse error.
func ParseSituation(raw string) (string, []string, error) {
	items, err := parseList(raw)
	if err != nil {
		return "", nil, err
	}
	if len(items) != 5 {
		return "", nil, fmt.Errorf("expected a list of 5 entries, got %d", len(items))
	}

	texts := make([]string, len(items))
	for idx, item := range items {
		texts[idx] = item.text
	}

	return texts[0], texts[1:], nil
}

// ParseSelection splits a generated selection answer into the chosen option
// index and the rationale.
func ParseSelection(raw string) (int, string, error) {
	items, err := parseList(raw)
	if err != nil {
		return 0, "", err
	}
	if len(items) != 2 {
		return 0, "", fmt.Errorf("expected a list of 2 entries, got %d", len(items))
	}
	if items[0].quoted {
		return 0, "", fmt.Errorf("expected an unquoted option number, got %q", items[0].text)
	}

	index, err := strconv.Atoi(strings.TrimSpace(items[0].text))
	if err != nil {
		return 0, "", fmt.Errorf("expected an integer option number, got %q", items[0].text)
	}

	return index, items[1].text, nil
}

type listItem struct {
	text   string
	quoted bool
}

func parseList(raw string) ([]listItem, error) {
	raw = stripFence(strings.TrimSpace(raw))

	// Fast path, the answer is already a valid JSON array of strings.
	var texts []string
	if err := jsoniter.UnmarshalFromString(raw, &texts); err == nil {
		items := make([]listItem, len(texts))
		for idx, text := range texts {
			items[idx] = listItem{text: text, quoted: true}
		}
		return items, nil
	}

	if !strings.HasPrefix(raw, "[") {
		return nil, fmt.Errorf("answer is not a list")
	}

	var items []listItem
	pos := 1
	for {
		for pos < len(raw) && (raw[pos] == ' ' || raw[pos] == '\n' || raw[pos] == '\t' || raw[pos] == '\r') {
			pos++
		}
		if pos >= len(raw) {
			return nil, fmt.Errorf("answer list is not terminated")
		}
		if raw[pos] == ']' {
			break
		}

		switch quote := raw[pos]; quote {
		case '\'', '"':
			text, next, err := scanQuoted(raw, pos)
			if err != nil {
				return nil, err
			}
			items = append(items, listItem{text: text, quoted: true})
			pos = next
		default:
			end := pos
			for end < len(raw) && raw[end] != ',' && raw[end] != ']' {
				end++
			}
			if end >= len(raw) {
				return nil, fmt.Errorf("answer list is not terminated")
			}
			text := strings.TrimSpace(raw[pos:end])
			if len(text) == 0 {
				return nil, fmt.Errorf("answer list has an empty entry")
			}
			items = append(items, listItem{text: text})
			pos = end
		}

		for pos < len(raw) && (raw[pos] == ' ' || raw[pos] == '\n' || raw[pos] == '\t' || raw[pos] == '\r') {
			pos++
		}
		if pos >= len(raw) {
			return nil, fmt.Errorf("answer list is not terminated")
		}
		if raw[pos] == ',' {
			pos++
		} else if raw[pos] != ']' {
			return nil, fmt.Errorf("unexpected character %q in answer list", raw[pos])
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("answer list is empty")
	}

	return items, nil
}

func scanQuoted(raw string, start int) (string, int, error) {
	quote := raw[start]
	var sb strings.Builder
	pos := start + 1
	for pos < len(raw) {
		switch raw[pos] {
		case '\\':
			if pos+1 >= len(raw) {
				return "", 0, fmt.Errorf("answer list has a dangling escape")
			}
			sb.WriteByte(raw[pos+1])
			pos += 2
		case quote:
			return sb.String(), pos + 1, nil
		default:
			sb.WriteByte(raw[pos])
			pos++
		}
	}
	return "", 0, fmt.Errorf("answer list has an unterminated string")
}

func stripFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.Index(raw, "\n"); idx >= 0 {
		raw = raw[idx+1:]
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
