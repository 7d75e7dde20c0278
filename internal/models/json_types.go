package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string, as sent by HTML forms.
// Set is false when the key was absent or null.
type FlexInt struct {
	Value int
	Set   bool
}

func NewFlexInt(v int) FlexInt { return FlexInt{Value: v, Set: true} }

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(unq)
		if s == "" {
			*f = FlexInt{Set: true}
			return nil
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n != math.Trunc(n) || math.IsInf(n, 0) {
		return fmt.Errorf("invalid integer %q", s)
	}
	*f = FlexInt{Value: int(n), Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// Present mirrors a truthiness check: absent, empty and zero all count as missing.
func (f FlexInt) Present() bool {
	return f.Set && f.Value != 0
}

// FlexFloat accepts a JSON number or a numeric string. Unlike FlexInt a
// malformed value is not a decode error: Valid is false so callers can
// answer "Invalid amount" themselves.
type FlexFloat struct {
	Value float64
	Set   bool
	Valid bool
	Raw   string
}

func NewFlexFloat(v float64) FlexFloat {
	return FlexFloat{Value: v, Set: true, Valid: true, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = FlexFloat{}
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = strings.TrimSpace(unq)
	}
	out := FlexFloat{Set: true, Raw: s}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		out.Value = n
		out.Valid = true
	}
	*f = out
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Set || !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// Present reports whether a value was supplied at all (absent, empty string
// and zero count as missing).
func (f FlexFloat) Present() bool {
	if !f.Set || f.Raw == "" {
		return false
	}
	return !(f.Valid && f.Value == 0)
}

// Positive reports whether the value is numeric and strictly greater than zero.
func (f FlexFloat) Positive() bool {
	return f.Set && f.Valid && f.Value > 0
}

// Column limits for money: parent_payments.amount is NUMERIC(10,2) and
// expenses.amount is NUMERIC(12,2).
const (
	MaxPaymentAmount = 99999999.99
	MaxExpenseAmount = 9999999999.99
)

// Money reports whether the value is positive, no larger than max and has
// at most two decimal places, so it is stored exactly.
func (f FlexFloat) Money(max float64) bool {
	if !f.Positive() || f.Value > max {
		return false
	}
	raw := strings.TrimLeft(f.Raw, "+")
	if strings.ContainsAny(raw, "eE") {
		cents := f.Value * 100
		return math.Abs(cents-math.Round(cents)) < 1e-6
	}
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return len(strings.TrimRight(raw[i+1:], "0")) <= 2
	}
	return true
}
