package entity

import (
	"errors"

	dsentity "github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

type AttachmentKind string

const (
	AttachmentImage   AttachmentKind = "image"
	AttachmentDataset AttachmentKind = "dataset"
)

var ErrInvalidAttachment = errors.New("invalid attachment")

type ImageMeta struct {
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Attachment references an image or a dataset. Exactly one of Image and
// Dataset is set, matching Kind; build it with NewImageAttachment or
// NewDatasetAttachment.
type Attachment struct {
	ID      string                   `json:"id"`
	Kind    AttachmentKind           `json:"type"`
	Name    string                   `json:"name"`
	URL     string                   `json:"url"`
	Image   *ImageMeta               `json:"image,omitempty"`
	Dataset *dsentity.DatasetSummary `json:"dataset,omitempty"`
}

func NewImageAttachment(img Image) Attachment {
	return Attachment{
		ID:    img.ID,
		Kind:  AttachmentImage,
		Name:  img.Name,
		URL:   img.URL,
		Image: &ImageMeta{MimeType: img.MimeType, Size: img.Size},
	}
}

func NewDatasetAttachment(summary dsentity.DatasetSummary) Attachment {
	cp := summary.Clone()
	return Attachment{
		ID:      summary.ID,
		Kind:    AttachmentDataset,
		Name:    summary.Name,
		Dataset: &cp,
	}
}

func (a Attachment) Validate() error {
	if a.ID == "" {
		return ErrInvalidAttachment
	}

	switch a.Kind {
	case AttachmentImage:
		if a.Image == nil || a.Dataset != nil {
			return ErrInvalidAttachment
		}
	case AttachmentDataset:
		if a.Dataset == nil || a.Image != nil {
			return ErrInvalidAttachment
		}
	default:
		return ErrInvalidAttachment
	}
	return nil
}

func (a Attachment) Clone() Attachment {
	out := a
	if a.Image != nil {
		meta := *a.Image
		out.Image = &meta
	}
	if a.Dataset != nil {
		ds := a.Dataset.Clone()
		out.Dataset = &ds
	}
	return out
}
