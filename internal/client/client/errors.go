package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnauthorized is returned for every 401 response.
var ErrUnauthorized = errors.New("Unauthorized")

// DefaultErrorMessage is used when a failed response carries no usable message.
const DefaultErrorMessage = "Request failed"

// ValidationIssue is one entry of a structured validation error.
type ValidationIssue struct {
	// Loc is the path to the offending field, e.g. ["body", "email"].
	// Nil when the server omitted it.
	Loc []string
	Msg string
}

func (v ValidationIssue) String() string {
	field := "field"
	if v.Loc != nil {
		field = strings.Join(v.Loc, ".")
	}
	return field + ": " + v.Msg
}

// APIError is a non-2xx, non-401 response reduced to one message.
type APIError struct {
	StatusCode int
	Message    string
	// Issues is set when the message was built from a validation list.
	Issues []ValidationIssue
}

func (e *APIError) Error() string { return e.Message }

type detailKind int

const (
	detailAbsent detailKind = iota
	detailText
	detailIssues
)

// errorDetail is the "detail" member of an error body, which is either a
// plain string or a list of validation issues.
type errorDetail struct {
	kind   detailKind
	text   string
	issues []ValidationIssue
}

func (d *errorDetail) UnmarshalJSON(data []byte) error {
	*d = errorDetail{}

	switch firstByte(data) {
	case '"':
		if err := json.Unmarshal(data, &d.text); err != nil {
			return err
		}
		if d.text != "" {
			d.kind = detailText
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		d.kind = detailIssues
		d.issues = make([]ValidationIssue, 0, len(items))
		for _, item := range items {
			d.issues = append(d.issues, decodeIssue(item))
		}
	}
	return nil
}

func decodeIssue(data json.RawMessage) ValidationIssue {
	var fields map[string]json.RawMessage
	if firstByte(data) != '{' || json.Unmarshal(data, &fields) != nil {
		return ValidationIssue{}
	}

	issue := ValidationIssue{Msg: scalarText(fields["msg"])}
	var loc []json.RawMessage
	if firstByte(fields["loc"]) == '[' && json.Unmarshal(fields["loc"], &loc) == nil {
		issue.Loc = make([]string, 0, len(loc))
		for _, part := range loc {
			issue.Loc = append(issue.Loc, scalarText(part))
		}
	}
	return issue
}

// scalarText renders a JSON scalar the way it reads: strings unquoted,
// numbers and booleans verbatim, null as "".
func scalarText(data json.RawMessage) string {
	if len(data) == 0 || string(data) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	return string(bytes.TrimSpace(data))
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

// newAPIError builds the error for a failed response from its raw body. The
// message is chosen in this order: validation issues, detail text, message
// text, DefaultErrorMessage. An unreadable body counts as an empty object.
// Only the exact lower-case keys "detail" and "message" are consulted.
func newAPIError(status int, body []byte) *APIError {
	var fields map[string]json.RawMessage
	if firstByte(body) != '{' || json.Unmarshal(body, &fields) != nil {
		fields = nil
	}

	var detail errorDetail
	if raw, ok := fields["detail"]; ok {
		if err := detail.UnmarshalJSON(raw); err != nil {
			detail = errorDetail{}
		}
	}

	apiErr := &APIError{StatusCode: status, Message: DefaultErrorMessage}

	switch detail.kind {
	case detailIssues:
		parts := make([]string, 0, len(detail.issues))
		for _, issue := range detail.issues {
			parts = append(parts, issue.String())
		}
		apiErr.Message = strings.Join(parts, "; ")
		apiErr.Issues = detail.issues
		return apiErr
	case detailText:
		apiErr.Message = detail.text
		return apiErr
	}

	var msg string
	if firstByte(fields["message"]) == '"' && json.Unmarshal(fields["message"], &msg) == nil && msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}
