package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style captures the newline shape of a source document.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.Equal(content[frontmatterStart:], []byte("---")) {
		return []byte{}, []byte{}, true, style, nil
	}
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---")
	offset := frontmatterStart
	for {
		idx := bytes.Index(content[offset:], closeSeq)
		if idx < 0 {
			return nil, nil, false, style, ErrMissingClosingDelimiter
		}
		lineStart := offset + idx
		afterClose := lineStart + len(closeSeq)
		rest := content[afterClose:]
		if len(rest) == 0 || bytes.HasPrefix(rest, []byte(nl)) {
			bodyStart := min(afterClose+len(nl), len(content))
			return content[frontmatterStart : lineStart+len(nl)], content[bodyStart:], true, style, nil
		}
		// "----" or "--- x" is content, keep looking.
		offset = afterClose
	}
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// ErrInvalidYAML wraps frontmatter that could not be decoded.
var ErrInvalidYAML = errors.New("invalid yaml frontmatter")

// Metadata holds the recognised frontmatter keys. Absent keys stay zero.
type Metadata struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Topics      Topics `yaml:"topics"`
	Weight      *int   `yaml:"weight"`
	GitHub      string `yaml:"github"`
	HeadScripts string `yaml:"head_scripts"`
}

// Topics is an ordered, duplicate-free topic list. A single scalar is
// accepted as a one-element list.
type Topics []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Topics) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*t = nil
			return nil
		}
		raw = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return err
		}
	default:
		return fmt.Errorf("topics: expected a list of strings at line %d", node.Line)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make(Topics, 0, len(raw))
	for _, topic := range raw {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}
	*t = out
	return nil
}

// Parsed is a document split into decoded metadata and its body.
type Parsed struct {
	Meta  Metadata
	Raw   string // undecoded frontmatter text
	Body  string
	Had   bool
	Style Style
}

// Parse splits content and decodes its frontmatter. A document without a
// frontmatter block, or with an unterminated one, is returned whole as the
// body with empty metadata. Only YAML that fails to decode is an error.
func Parse(content []byte) (*Parsed, error) {
	fm, body, had, style, err := Split(content)
	if errors.Is(err, ErrMissingClosingDelimiter) {
		return &Parsed{Body: string(content), Style: style}, nil
	}
	if err != nil {
		return nil, err
	}

	p := &Parsed{Raw: string(fm), Body: string(body), Had: had, Style: style}
	if len(bytes.TrimSpace(fm)) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(fm, &p.Meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	return p, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
