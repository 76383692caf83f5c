package errors

import (
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// UserMessage returns a human readable message for err. When err carries a
// response body with a "message" (or "error") field, that field is used,
// otherwise fallback is returned.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	e, ok := err.(Error)
	if !ok {
		return fallback
	}

	if fields, ok := err.(Fields); ok {
		return fields.Error()
	}

	body := e.Body()
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fallback
	}

	res := gjson.GetManyBytes(body, "message", "error")
	for _, r := range res {
		if r.Type == gjson.String && strings.TrimSpace(r.String()) != "" {
			return r.String()
		}
	}

	return fallback
}

// Fields holds field-scoped validation errors, keyed by field name.
type Fields map[string]string

func (f Fields) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = f[k]
	}
	return strings.Join(msgs, ", ")
}

func (f Fields) Code() int       { return http.StatusBadRequest }
func (f Fields) Message() string { return f.Error() }
func (f Fields) Cause() error    { return nil }
func (f Fields) Body() []byte    { return nil }

// Has reports whether a message is set for field.
func (f Fields) Has(field string) bool {
	return f[field] != ""
}
