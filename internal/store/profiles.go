package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sidehustle_server/internal/types"
)

// GetProfile returns the caller's profile; ok is false when none is saved.
func (s *Store) GetProfile(ctx context.Context, userID string) (profile types.UserProfile, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT name FROM user_profiles WHERE user_id = ?`, userID).Scan(&profile.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return types.UserProfile{}, false, nil
	}
	if err != nil {
		return types.UserProfile{}, false, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, true, nil
}

// SaveProfile creates or replaces the caller's profile.
func (s *Store) SaveProfile(ctx context.Context, userID string, profile types.UserProfile) error {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	err := s.withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO user_profiles (user_id, name) VALUES (?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET name = excluded.name`,
			userID, name)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
