package model

import (
	"time"

	"github.com/google/uuid"
)

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is one rendered entry of the conversation log. It is never mutated
// after creation.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Author     Author    `json:"author"`
	RenderedAt time.Time `json:"rendered_at"`
}

func NewMessage(author Author, text string, at time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		Text:       text,
		Author:     author,
		RenderedAt: at,
	}
}

func (m Message) IsUser() bool {
	return m.Author == AuthorUser
}
