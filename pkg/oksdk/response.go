package oksdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind is the JSON type of a decoded response body. The API answers with
// objects, arrays or bare scalars depending on the method.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Response is a decoded API answer. Numbers are kept as json.Number so large
// user IDs survive untouched.
type Response struct {
	kind  Kind
	value any
	raw   json.RawMessage
}

// parseResponse decodes body into a Response. An empty body is null.
func parseResponse(body []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Response{kind: KindNull, raw: json.RawMessage("null")}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode response: trailing data after JSON value")
	}

	return &Response{kind: kindOf(v), value: v, raw: json.RawMessage(trimmed)}, nil
}

func kindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case json.Number:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindNull
	}
}

// Kind returns the JSON type of the body.
func (r *Response) Kind() Kind { return r.kind }

// Raw returns the body bytes.
func (r *Response) Raw() json.RawMessage { return r.raw }

// Value returns the decoded body: map[string]any, []any, string,
// json.Number, bool or nil.
func (r *Response) Value() any { return r.value }

// Object returns the body as an object.
func (r *Response) Object() (map[string]any, bool) {
	m, ok := r.value.(map[string]any)
	return m, ok
}

// Array returns the body as an array.
func (r *Response) Array() ([]any, bool) {
	a, ok := r.value.([]any)
	return a, ok
}

// Bool returns the body as a boolean.
func (r *Response) Bool() (bool, bool) {
	b, ok := r.value.(bool)
	return b, ok
}

// Str returns the body as a string.
func (r *Response) Str() (string, bool) {
	s, ok := r.value.(string)
	return s, ok
}

// Number returns the body as a number.
func (r *Response) Number() (json.Number, bool) {
	n, ok := r.value.(json.Number)
	return n, ok
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.raw, v)
}

// apiError returns the error envelope carried by an object body, or nil.
func (r *Response) apiError(statusCode int) *APIError {
	obj, ok := r.Object()
	if !ok {
		return nil
	}

	code, ok := obj["error_code"]
	if !ok {
		return nil
	}

	msg, _ := obj["error_msg"].(string)
	return &APIError{
		StatusCode: statusCode,
		Code:       errorCode(code),
		Message:    msg,
		Body:       r.raw,
	}
}

// errorCode tolerates codes sent as numbers or numeric strings.
func errorCode(v any) int {
	switch c := v.(type) {
	case json.Number:
		if n, err := c.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(c); err == nil {
			return n
		}
	}
	return 0
}
