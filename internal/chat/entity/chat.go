package entity

import (
	"time"

	dsentity "github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Message struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	CreatedAt   time.Time    `json:"createdAt"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Model       string       `json:"model,omitempty"`
}

type Session struct {
	ID        string                             `json:"id"`
	Model     string                             `json:"model"`
	CreatedAt time.Time                          `json:"createdAt"`
	UpdatedAt time.Time                          `json:"updatedAt"`
	Messages  []Message                          `json:"messages"`
	Datasets  map[string]dsentity.DatasetSummary `json:"datasets"`
}

// Image is an uploaded image kept on local disk and served under URL.
type Image struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FileName string `json:"fileName"`
	Path     string `json:"-"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

type Model struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Provider string `json:"provider"`
}

func (m Message) Clone() Message {
	out := m
	if m.Attachments != nil {
		out.Attachments = make([]Attachment, len(m.Attachments))
		for i, a := range m.Attachments {
			out.Attachments[i] = a.Clone()
		}
	}
	return out
}

func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = m.Clone()
	}
	out.Datasets = make(map[string]dsentity.DatasetSummary, len(s.Datasets))
	for id, d := range s.Datasets {
		out.Datasets[id] = d.Clone()
	}
	return out
}
