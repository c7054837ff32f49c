package transport

import (
	"encoding/json"
	"io"
	"net/url"
	"strconv"
)

// Body is a request payload: *FormData or JSONBody.
type Body interface {
	body()
}

// JSONBody is a pre-encoded JSON document sent as the request body.
type JSONBody string

func (JSONBody) body() {}

// NewJSONBody encodes v.
func NewJSONBody(v any) (JSONBody, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return JSONBody(raw), nil
}

type formFile struct {
	field    string
	filename string
	reader   io.Reader
}

// FormData is a multipart form. Fields keep insertion order and may repeat.
type FormData struct {
	values url.Values
	keys   []string
	files  []formFile
}

// NewFormData returns an empty form.
func NewFormData() *FormData {
	return &FormData{values: url.Values{}}
}

func (*FormData) body() {}

// Append adds a text field.
func (f *FormData) Append(key, value string) *FormData {
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values.Add(key, value)
	return f
}

// AppendInt adds an integer field.
func (f *FormData) AppendInt(key string, value int64) *FormData {
	return f.Append(key, strconv.FormatInt(value, 10))
}

// AppendFile adds a file part read from r.
func (f *FormData) AppendFile(field, filename string, r io.Reader) *FormData {
	f.files = append(f.files, formFile{field: field, filename: filename, reader: r})
	return f
}

// Has reports whether key was appended as a text field or file part.
func (f *FormData) Has(key string) bool {
	if _, ok := f.values[key]; ok {
		return true
	}
	for _, file := range f.files {
		if file.field == key {
			return true
		}
	}
	return false
}

// Get returns the first value for key.
func (f *FormData) Get(key string) string {
	return f.values.Get(key)
}

// Keys returns the text field names in insertion order.
func (f *FormData) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Values returns a copy of the text fields.
func (f *FormData) Values() url.Values {
	out := make(url.Values, len(f.values))
	for k, v := range f.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}
