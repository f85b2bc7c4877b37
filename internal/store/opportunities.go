package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sidehustle_server/internal/types"
	"sidehustle_server/internal/utils"
)

// NewOpportunity is the user-submitted part of an Opportunity.
type NewOpportunity struct {
	Title        string
	Company      string
	Description  string
	Link         string
	Remote       bool
	Category     string
	BarrierLevel int
}

// Validate applies the submission form rules.
func (n NewOpportunity) Validate() error {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidOpportunity)
	case strings.TrimSpace(n.Company) == "":
		return fmt.Errorf("%w: company is required", ErrInvalidOpportunity)
	case strings.TrimSpace(n.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidOpportunity)
	case strings.TrimSpace(n.Link) == "":
		return fmt.Errorf("%w: link is required", ErrInvalidOpportunity)
	case !utils.IsHTTPLink(n.Link):
		return fmt.Errorf("%w: link must start with http:// or https://", ErrInvalidOpportunity)
	case !utils.IsKnownCategory(n.Category):
		return fmt.Errorf("%w: unknown category %q", ErrInvalidOpportunity, n.Category)
	case n.BarrierLevel < 1 || n.BarrierLevel > 5:
		return fmt.Errorf("%w: barrier level must be between 1 and 5", ErrInvalidOpportunity)
	}
	return nil
}

const xerisTitle = "Xeris Mining"

const opportunityColumns = `id, title, company, description, link, remote, category, barrier_level, score, reason, is_featured, created_at`

// SubmitOpportunity validates and stores a listing, returning its id.
func (s *Store) SubmitOpportunity(ctx context.Context, n NewOpportunity) (int64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}
	return s.insertOpportunity(ctx, types.Opportunity{
		Title:        strings.TrimSpace(n.Title),
		Company:      strings.TrimSpace(n.Company),
		Description:  strings.TrimSpace(n.Description),
		Link:         strings.TrimSpace(n.Link),
		Remote:       n.Remote,
		Category:     n.Category,
		BarrierLevel: n.BarrierLevel,
	})
}

func (s *Store) insertOpportunity(ctx context.Context, o types.Opportunity) (int64, error) {
	var id int64
	err := s.withRetry(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO opportunities (title, company, description, link, remote, category, barrier_level, score, reason, is_featured, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.Title, o.Company, o.Description, o.Link, boolToInt(o.Remote), o.Category,
			o.BarrierLevel, o.Score, o.Reason, boolToInt(o.IsFeatured), s.now().UnixNano())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert opportunity: %w", err)
	}
	return id, nil
}

// GetOpportunity loads a single listing.
func (s *Store) GetOpportunity(ctx context.Context, id int64) (types.Opportunity, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`, id)
	o, err := scanOpportunity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Opportunity{}, fmt.Errorf("%w: %d", ErrOpportunityNotFound, id)
	}
	if err != nil {
		return types.Opportunity{}, fmt.Errorf("failed to load opportunity %d: %w", id, err)
	}
	return o, nil
}

// ListOpportunities returns listings matching every non-nil filter field.
func (s *Store) ListOpportunities(ctx context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error) {
	var (
		where []string
		args  []any
	)
	if filter.Remote != nil {
		where = append(where, "remote = ?")
		args = append(args, boolToInt(*filter.Remote))
	}
	if filter.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *filter.Category)
	}
	if filter.BarrierLevel != nil {
		where = append(where, "barrier_level = ?")
		args = append(args, *filter.BarrierLevel)
	}

	query := `SELECT ` + opportunityColumns + ` FROM opportunities`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	return s.queryOpportunities(ctx, query, args...)
}

// FeaturedOpportunities returns listings flagged as featured.
func (s *Store) FeaturedOpportunities(ctx context.Context) ([]types.Opportunity, error) {
	return s.queryOpportunities(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE is_featured = 1 ORDER BY score DESC, id`)
}

// CountOpportunities returns the total number of listings.
func (s *Store) CountOpportunities(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM opportunities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count opportunities: %w", err)
	}
	return n, nil
}

// EnsureXerisFeatured seeds the featured Xeris Mining listing once.
// It reports whether a row was inserted.
func (s *Store) EnsureXerisFeatured(ctx context.Context) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM opportunities WHERE title = ? AND is_featured = 1`, xerisTitle).Scan(&one)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to look up featured listing: %w", err)
	}

	id, err := s.insertOpportunity(ctx, types.Opportunity{
		Title:        xerisTitle,
		Company:      "Xeris",
		Description:  "Run a Xeris node from home and earn rewards for securing the network. Setup takes an afternoon and runs on commodity hardware.",
		Link:         "https://xeris.io",
		Remote:       true,
		Category:     "Crypto",
		BarrierLevel: 2,
		Score:        95,
		Reason:       "Low setup cost, fully remote and passive once running.",
		IsFeatured:   true,
	})
	if err != nil {
		return false, err
	}
	log.Printf("Seeded featured opportunity %q with id %d", xerisTitle, id)
	return true, nil
}

func (s *Store) queryOpportunities(ctx context.Context, query string, args ...any) ([]types.Opportunity, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer rows.Close()

	out := []types.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(r rowScanner) (types.Opportunity, error) {
	var (
		o                types.Opportunity
		remote, featured int
		createdAt        int64
	)
	err := r.Scan(&o.ID, &o.Title, &o.Company, &o.Description, &o.Link, &remote,
		&o.Category, &o.BarrierLevel, &o.Score, &o.Reason, &featured, &createdAt)
	if err != nil {
		return types.Opportunity{}, err
	}
	o.Remote = remote != 0
	o.IsFeatured = featured != 0
	o.CreatedAt = time.Unix(0, createdAt)
	return o, nil
}
