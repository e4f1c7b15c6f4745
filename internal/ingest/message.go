package ingest

// Message is one inbound chat message, already resolved by the chat-platform
// client: any platform media handle has been turned into a fetchable URL
// before it reaches the pipeline.
type Message struct {
	text     string
	imageRef string
}

// TextOnly builds a message without an image.
func TextOnly(text string) Message {
	return Message{text: text}
}

// WithImage builds a message for a photo post. The caption is the text the
// extraction runs on; imageRef is attached to the listing after validation.
func WithImage(caption, imageRef string) Message {
	return Message{text: caption, imageRef: imageRef}
}

func (m Message) Text() string     { return m.text }
func (m Message) ImageRef() string { return m.imageRef }
func (m Message) HasImage() bool   { return m.imageRef != "" }
