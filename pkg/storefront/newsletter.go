package storefront

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"storefront/pkg/persist"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidEmail applies the storefront's loose email check.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Subscribe adds email to the newsletter list. Subscribing twice is not an
// error and stores the address once.
func (s *Store) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if email == "" || !ValidEmail(email) {
		err := newError(KindInvalidEmail, ErrMsgInvalidEmail)
		s.finish(ctx, OpSubscribe, err)
		return err
	}
	if !slices.Contains(s.newsletter, email) {
		s.newsletter = append(s.newsletter, email)
		if err := s.persist.SaveNewsletter(ctx, s.newsletter); err != nil {
			s.persistFailed(ctx, persist.KeyNewsletter, err)
		}
	}
	s.finish(ctx, OpSubscribe, nil)
	return nil
}

// Subscribers returns the subscribed addresses.
func (s *Store) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.newsletter)
}
