// Package notice is the single error-reporting path for every view: field
// errors shown inline next to inputs, toasts shown briefly, and blocking
// notices the user has to dismiss.
package notice

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Kind classifies how a notice is presented.
type Kind string

const (
	KindField    Kind = "field"
	KindToast    Kind = "toast"
	KindBlocking Kind = "blocking"
)

// FlashCookie carries toasts and blocking notices across a redirect.
const FlashCookie = "mapup_flash"

// Notice is one message for the user.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func FieldError(field, message string) Notice {
	return Notice{Kind: KindField, Field: field, Message: message}
}

func Toast(message string) Notice {
	return Notice{Kind: KindToast, Message: message}
}

func Blocking(message string) Notice {
	return Notice{Kind: KindBlocking, Message: message}
}

// Set collects the notices rendered with one view.
type Set struct {
	items []Notice
}

// NewSet returns a set holding ns.
func NewSet(ns ...Notice) *Set {
	s := &Set{}
	s.Add(ns...)
	return s
}

func (s *Set) Add(ns ...Notice) {
	s.items = append(s.items, ns...)
}

// AddFields adds one field notice per entry of a field→message map.
func (s *Set) AddFields(fields map[string]string) {
	for f, msg := range fields {
		s.Add(FieldError(f, msg))
	}
}

func (s *Set) All() []Notice { return s.items }
func (s *Set) Empty() bool   { return len(s.items) == 0 }

// Fields returns the field→message mapping of all field notices.
func (s *Set) Fields() map[string]string {
	out := map[string]string{}
	for _, n := range s.items {
		if n.Kind == KindField {
			out[n.Field] = n.Message
		}
	}
	return out
}

// Field returns the message for field, or "".
func (s *Set) Field(field string) string {
	return s.Fields()[field]
}

func (s *Set) Toasts() []string   { return s.messages(KindToast) }
func (s *Set) Blocking() []string { return s.messages(KindBlocking) }

func (s *Set) messages(k Kind) []string {
	var out []string
	for _, n := range s.items {
		if n.Kind == k {
			out = append(out, n.Message)
		}
	}
	return out
}

// Flash stores toasts and blocking notices in a cookie so they are shown by the
// page the client is redirected to. Field notices are dropped.
func Flash(c echo.Context, ns ...Notice) {
	keep := make([]Notice, 0, len(ns))
	for _, n := range ns {
		if n.Kind != KindField {
			keep = append(keep, n)
		}
	}
	if len(keep) == 0 {
		return
	}
	raw, err := json.Marshal(keep)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the flashed notices, if any, and expires the cookie.
func Pop(c echo.Context) []Notice {
	ck, err := c.Cookie(FlashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var ns []Notice
	if err := json.Unmarshal(raw, &ns); err != nil {
		return nil
	}
	return ns
}
