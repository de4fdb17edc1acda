package pkgrouter

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/phamm25/ai-chatbot/internal/pkg/pkgerror"
)

const maxFormFieldBytes = 4 << 10

// UploadOverhead is the allowance for multipart framing and form fields on
// top of a file size limit, for use with MaxBody.
const UploadOverhead int64 = 64 << 10

// Upload is a file received either as a multipart part or as a raw body.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
	Fields      map[string]string
}

// ReadUpload reads the file from the multipart part named field, or the whole
// body for non-multipart requests (file name taken from the "name" query
// parameter). At most limit+1 bytes are read so callers can tell an oversized
// file apart without buffering it entirely.
func ReadUpload(r *http.Request, field string, limit int64) (Upload, error) {
	if isMultipart(r.Header.Get("Content-Type")) {
		return readMultipartUpload(r, field, limit)
	}

	if r.Body == nil || r.Body == http.NoBody {
		return Upload{}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return Upload{}, readError(err)
	}
	if len(data) == 0 {
		return Upload{}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	fields := map[string]string{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	return Upload{
		FileName:    strings.TrimSpace(r.URL.Query().Get("name")),
		ContentType: r.Header.Get("Content-Type"),
		Data:        data,
		Fields:      fields,
	}, nil
}

func isMultipart(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && strings.EqualFold(mediaType, "multipart/form-data")
}

func readMultipartUpload(r *http.Request, field string, limit int64) (Upload, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return Upload{}, readError(err)
	}

	up := Upload{Fields: map[string]string{}}
	found := false
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Upload{}, readError(err)
		}

		switch {
		case part.FormName() == field && !found:
			up.FileName = part.FileName()
			up.ContentType = part.Header.Get("Content-Type")
			up.Data, err = io.ReadAll(io.LimitReader(part, limit+1))
			found = true
		case part.FileName() == "":
			var value []byte
			value, err = io.ReadAll(io.LimitReader(part, maxFormFieldBytes))
			up.Fields[part.FormName()] = strings.TrimSpace(string(value))
		}
		_ = part.Close()
		if err != nil {
			return Upload{}, readError(err)
		}
	}

	if !found {
		return Upload{}, pkgerror.NewInvalidInput(errors.New(field + " part is required"))
	}
	return up, nil
}

func readError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return pkgerror.NewBusinessCause("Request body too large", pkgerror.CodeTooLarge, err)
	}
	return pkgerror.NewInvalidFormat()
}
