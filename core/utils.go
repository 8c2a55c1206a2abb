package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DueDateLayout   = "2006-01-02"
	DueDateLayoutBR = "02/01/2006"
)

var ErrInvalidDueDate = errors.New("invalid due date; use yyyy-mm-dd or dd/mm/yyyy")

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseFormInt reads the leading integer of s ("12abc" -> 12). ok is false when there is none.
func ParseFormInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormInt is an integer typed in a form field: a JSON number or a string.
// Unparsable input decodes to 0.
type FormInt int

func (fi *FormInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*fi = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, _ := ParseFormInt(s)
		*fi = FormInt(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*fi = 0
		return nil
	}
	*fi = FormInt(int(f))
	return nil
}

// Set implements pflag.Value so a FormInt can be bound to a CLI flag.
func (fi *FormInt) Set(s string) error {
	n, _ := ParseFormInt(s)
	*fi = FormInt(n)
	return nil
}

func (fi *FormInt) String() string { return strconv.Itoa(int(*fi)) }
func (fi *FormInt) Type() string   { return "int" }

// NormalizeDueDate accepts yyyy-mm-dd or dd/mm/yyyy and returns yyyy-mm-dd.
func NormalizeDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DueDateLayout, DueDateLayoutBR} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DueDateLayout), nil
		}
	}
	return "", ErrInvalidDueDate
}
