package utils

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"sidehustle_server/internal/types"
)

// ShouldRetry reports whether a storage error looks transient.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "sqlite_busy") ||
		strings.Contains(errMsg, "database table is locked") ||
		strings.Contains(errMsg, "interrupted") {
		return true
	}
	return false
}

// IsHTTPLink accepts only absolute http(s) links.
func IsHTTPLink(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// IsKnownCategory reports whether category is one of the submission categories.
func IsKnownCategory(category string) bool {
	return slices.Contains(types.Categories, category)
}

// ParseOptionalBool parses a query value; empty or "all" means no filter.
func ParseOptionalBool(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalInt parses a query value; empty or "all" means no filter.
func ParseOptionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalString trims raw; empty or "all" means no filter.
func ParseOptionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil
	}
	return &raw
}
