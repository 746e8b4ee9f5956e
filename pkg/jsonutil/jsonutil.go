// Package jsonutil provides a high-performance JSON encoding/decoding
// wrapper over github.com/go-json-experiment/json. Report and match
// serialization is the hot path when scanning large documentation trees
// with machine-readable output enabled.
//
// The API matches the standard library for easy migration:
//
//	data, err := jsonutil.Marshal(report)
//	err = jsonutil.Unmarshal(data, &report)
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Encoder provides a streaming JSON encoder compatible with
// encoding/json.Encoder, used by the JSONL writer to emit one match
// per line.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the JSON encoding of v followed by a newline.
func (e *Encoder) Encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	_, err = e.w.Write([]byte{'\n'})
	return err
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}
