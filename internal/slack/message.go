package slack

// Text is a Block Kit text object.
type Text struct {
	Type  string `json:"type"` // "plain_text" | "mrkdwn"
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Block is a Block Kit layout block. Only the members relevant to Type are set.
type Block struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Fields   []Text `json:"fields,omitempty"`
	Elements []Text `json:"elements,omitempty"`
}

// Message is the document posted to an incoming webhook.
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Add appends blocks and returns the message for chaining.
func (m *Message) Add(b ...Block) *Message {
	m.Blocks = append(m.Blocks, b...)
	return m
}

func Markdown(s string) Text { return Text{Type: "mrkdwn", Text: s} }

// Field renders a bold label over its value.
func Field(label, value string) Text {
	return Markdown("*" + label + ":*\n" + value)
}

func Header(title string) Block {
	return Block{Type: "header", Text: &Text{Type: "plain_text", Text: title, Emoji: true}}
}

// Section builds a two-column field section.
func Section(fields ...Text) Block {
	return Block{Type: "section", Fields: fields}
}

// SectionText builds a section with a single mrkdwn paragraph.
func SectionText(s string) Block {
	t := Markdown(s)
	return Block{Type: "section", Text: &t}
}

func Divider() Block { return Block{Type: "divider"} }

func Context(lines ...string) Block {
	els := make([]Text, len(lines))
	for i, l := range lines {
		els[i] = Markdown(l)
	}
	return Block{Type: "context", Elements: els}
}
