package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"path/filepath"
	"sync"
)

var (
	ErrNoRecipient    = errors.New("email: empty recipient")
	ErrNoContent      = errors.New("email: empty subject or body")
	ErrInvalidAddress = errors.New("email: invalid address")
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

func (m Message) Validate() error {
	switch {
	case m.To == "":
		return ErrNoRecipient
	case m.Subject == "" || m.HTML == "":
		return ErrNoContent
	case !IsEmailValid(m.To):
		return fmt.Errorf("%w: %q", ErrInvalidAddress, m.To)
	}
	return nil
}

// IsEmailValid accepts a bare address only, no display name.
func IsEmailValid(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}

// Templates renders the HTML templates of one directory. Each file is parsed
// on first use and kept.
type Templates struct {
	dir string

	mu    sync.Mutex
	cache map[string]*template.Template
}

func NewTemplates(dir string) *Templates {
	return &Templates{dir: dir, cache: make(map[string]*template.Template)}
}

func (t *Templates) Render(name string, data any) (string, error) {
	tmpl, err := t.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (t *Templates) lookup(name string) (*template.Template, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tmpl, ok := t.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := template.ParseFiles(filepath.Join(t.dir, name))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	t.cache[name] = tmpl
	return tmpl, nil
}
