package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_sentiment/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListUnrated(ctx context.Context, afterID int64, limit int) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listUnratedSQL, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var text sql.NullString
		if err := rows.Scan(&rv.ID, &rv.PropertyID, &text); err != nil {
			return nil, err
		}
		if text.Valid {
			s := text.String
			rv.Text = &s
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) UpdateAspects(ctx context.Context, id int64, aspectsJSON []byte) error {
	res, err := r.db.ExecContext(ctx, updateAspectsSQL, valJSON(aspectsJSON), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// MySQL reports 0 affected rows when the value is unchanged, so only a
	// missing row is an error.
	if n == 0 {
		if _, err := r.GetReview(ctx, id); err != nil {
			return fmt.Errorf("update aspects %d: %w", id, err)
		}
	}
	return nil
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	var (
		rv      domain.Review
		text    sql.NullString
		aspects sql.RawBytes
	)
	row := r.db.QueryRowContext(ctx, getReviewSQL, id)
	if err := row.Scan(&rv.ID, &rv.PropertyID, &text, &aspects); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	if text.Valid {
		s := text.String
		rv.Text = &s
	}
	if len(aspects) > 0 {
		rv.AspectsJSON = append([]byte(nil), aspects...)
	}
	return rv, nil
}

// InsertReview stores a bare review and returns its id. Used for seeding.
func (r *Repo) InsertReview(ctx context.Context, propertyID int64, text *string) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL, propertyID, valStr(text))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
