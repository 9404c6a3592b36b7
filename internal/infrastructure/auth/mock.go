// Package auth provides authentication backends.
package auth

import (
	"context"
	"strconv"
	"strings"
	"time"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

// MockUserID is the id every mock login resolves to.
const MockUserID = "1"

// Mock accepts any credentials after a fixed delay. Passwords are never
// inspected.
type Mock struct {
	delay time.Duration
	now   func() time.Time
}

var _ ports.AuthBackend = (*Mock)(nil)

// NewMock builds a backend that waits delay before answering.
func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay, now: time.Now}
}

// Authenticate fabricates the identity of an existing account.
func (m *Mock) Authenticate(ctx context.Context, email, _ string) (domain.Identity, error) {
	if err := m.wait(ctx); err != nil {
		return domain.Identity{}, err
	}

	name, _, _ := strings.Cut(email, "@")
	return domain.Identity{
		ID:    MockUserID,
		Email: email,
		Name:  name,
		Preferences: domain.Preferences{
			FavoriteCategories: []domain.Category{domain.CategoryTechnology, domain.CategoryBusiness},
			SummaryLength:      domain.SummaryMedium,
			Theme:              domain.ThemeLight,
		},
	}, nil
}

// Register fabricates a new account whose id is the current Unix time in
// milliseconds.
func (m *Mock) Register(ctx context.Context, email, _, name string) (domain.Identity, error) {
	if err := m.wait(ctx); err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		ID:    strconv.FormatInt(m.now().UnixMilli(), 10),
		Email: email,
		Name:  name,
		Preferences: domain.Preferences{
			FavoriteCategories: []domain.Category{domain.CategoryTechnology},
			SummaryLength:      domain.SummaryMedium,
			Theme:              domain.ThemeLight,
		},
	}, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(m.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
