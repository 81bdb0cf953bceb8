package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/barangay-connect/backend/internal/domain"
	pkgvalidator "github.com/barangay-connect/backend/pkg/validator"
)

// FormStore is the single owner of a registration's form values.
// Every stage of one journey shares the same store.
type FormStore struct {
	mu       sync.RWMutex
	form     domain.RegistrationForm
	errors   map[domain.FormField]string
	validate *validator.Validate
}

func NewFormStore(validate *validator.Validate) *FormStore {
	if validate == nil {
		validate = pkgvalidator.New()
	}
	return &FormStore{
		validate: validate,
		errors:   make(map[domain.FormField]string),
	}
}

// Values returns a copy of the whole form.
func (s *FormStore) Values() domain.RegistrationForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// Update applies fn to the form under the store lock.
func (s *FormStore) Update(fn func(f *domain.RegistrationForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.form)
}

// Merge overlays a partial JSON document onto the form. Verification flags cannot be set this way.
func (s *FormStore) Merge(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.form
	if err := json.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("decode form patch: %w", err)
	}
	// a changed destination must be verified again
	next.Account.PhoneVerified = s.form.Account.PhoneVerified && next.Account.Phone == s.form.Account.Phone
	next.Account.EmailVerified = s.form.Account.EmailVerified && next.Account.Email == s.form.Account.Email

	s.form = next
	return nil
}

// Trigger validates the named fields and records their messages.
// It reports whether all of them passed.
func (s *FormStore) Trigger(ctx context.Context, fields ...domain.FormField) bool {
	if len(fields) == 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
		delete(s.errors, f)
	}

	err := s.validate.StructPartialCtx(ctx, s.form, names...)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		for _, f := range fields {
			s.errors[f] = err.Error()
		}
		return false
	}

	for _, ferr := range verrs {
		s.errors[fieldFromNamespace(ferr.StructNamespace())] = pkgvalidator.Message(ferr.Tag(), ferr.Param())
	}

	return false
}

// Errors returns the messages recorded by the last Trigger calls.
func (s *FormStore) Errors() map[domain.FormField]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.FormField]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// ValidationError packs the current messages of fields into an error, or nil if none failed.
func (s *FormStore) ValidationError(fields ...domain.FormField) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.FormField]string)
	for _, f := range fields {
		if msg, ok := s.errors[f]; ok {
			out[f] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: out}
}

func (s *FormStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = domain.RegistrationForm{}
	s.errors = make(map[domain.FormField]string)
}

// Restore replaces the form with a persisted snapshot.
func (s *FormStore) Restore(form domain.RegistrationForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

func (s *FormStore) markVerified(channel domain.Channel) {
	s.Update(func(f *domain.RegistrationForm) {
		switch channel {
		case domain.ChannelPhone:
			f.Account.PhoneVerified = true
		case domain.ChannelEmail:
			f.Account.EmailVerified = true
		}
	})
}

// StructNamespace is prefixed with the top level type name: "RegistrationForm.Account.Phone".
func fieldFromNamespace(ns string) domain.FormField {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return domain.FormField(ns[i+1:])
	}
	return domain.FormField(ns)
}
