package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Form accumulates fields and file parts for a multipart request. The
// encoded content type comes from multipart.Writer itself so the boundary
// is always correct; the pipeline never sets a multipart header by hand.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

// AddField appends a text field. Empty values are skipped, matching the
// server's expectation that optional fields are simply absent.
func (f *Form) AddField(name, value string) {
	if value == "" {
		return
	}
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddFileBytes appends a file part with in-memory content.
func (f *Form) AddFileBytes(field, filename string, content []byte) {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
}

// AddFilePath reads the file at path and appends it as a file part.
func (f *Form) AddFilePath(field, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.AddFileBytes(field, filepath.Base(path), content)
	return nil
}

// encode renders the multipart body and returns it together with the
// boundary-bearing content type.
func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
