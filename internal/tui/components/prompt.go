package components

import (
	"strings"
	"unicode/utf8"
)

// Prompt is a single-line text input shown below a view, such as the name
// of an item to add.
type Prompt struct {
	label     string
	value     []rune
	cursor    int
	maxLength int
	err       string
	styles    Styles

	submitted bool
	cancelled bool
}

// NewPrompt creates an empty prompt.
func NewPrompt(label string, styles Styles) *Prompt {
	return &Prompt{
		label:     label,
		maxLength: 64,
		styles:    styles,
	}
}

// SetValue replaces the text and moves the cursor to the end.
func (p *Prompt) SetValue(v string) *Prompt {
	p.value = []rune(v)
	p.cursor = len(p.value)
	return p
}

// SetError sets a message shown next to the prompt.
func (p *Prompt) SetError(e string) {
	p.err = e
}

// Value returns the trimmed text.
func (p *Prompt) Value() string {
	return strings.TrimSpace(string(p.value))
}

// IsSubmitted reports whether enter was pressed with a non-empty value.
func (p *Prompt) IsSubmitted() bool {
	return p.submitted
}

// IsCancelled reports whether esc was pressed.
func (p *Prompt) IsCancelled() bool {
	return p.cancelled
}

// HandleKey applies a key press using tea.KeyMsg.String names.
func (p *Prompt) HandleKey(key string) {
	switch key {
	case "enter":
		if p.Value() == "" {
			p.err = "Required"
			return
		}
		p.err = ""
		p.submitted = true
	case "esc":
		p.cancelled = true
	case "backspace":
		if p.cursor > 0 {
			p.value = append(p.value[:p.cursor-1], p.value[p.cursor:]...)
			p.cursor--
		}
	case "delete":
		if p.cursor < len(p.value) {
			p.value = append(p.value[:p.cursor], p.value[p.cursor+1:]...)
		}
	case "left":
		if p.cursor > 0 {
			p.cursor--
		}
	case "right":
		if p.cursor < len(p.value) {
			p.cursor++
		}
	case "home", "ctrl+a":
		p.cursor = 0
	case "end", "ctrl+e":
		p.cursor = len(p.value)
	case " ", "space":
		p.insert(' ')
	default:
		if utf8.RuneCountInString(key) == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			p.insert(r)
		}
	}
}

func (p *Prompt) insert(r rune) {
	if len(p.value) >= p.maxLength {
		return
	}
	p.value = append(p.value[:p.cursor], append([]rune{r}, p.value[p.cursor:]...)...)
	p.cursor++
}

// Render renders the prompt with a block cursor.
func (p *Prompt) Render() string {
	before := string(p.value[:p.cursor])
	after := string(p.value[p.cursor:])

	out := p.styles.Label.Render(p.label+": ") +
		p.styles.Value.Render(before) +
		p.styles.Selected.Render("_") +
		p.styles.Value.Render(after)

	if p.err != "" {
		out += "  " + p.styles.Error.Render(p.err)
	}
	return out
}
