package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/models"
)

const profileColumns = `id, user_id, full_name, avatar_url, bio, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var (
		p                        models.Profile
		fullName, avatarURL, bio sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &fullName, &avatarURL, &bio, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.FullName = stringPtr(fullName)
	p.AvatarURL = stringPtr(avatarURL)
	p.Bio = stringPtr(bio)
	return &p, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullableText(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, fullName *string) (*models.Profile, error) {
	query := `INSERT INTO profiles (user_id, full_name)
		 VALUES ($1, $2)
		 RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRowContext(ctx, query, userID, nullableText(fullName)))
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		 WHERE user_id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if patch.FullName != nil {
		args = append(args, nullableText(patch.FullName))
		sets = append(sets, fmt.Sprintf("full_name = $%d", len(args)))
	}
	if patch.Bio != nil {
		args = append(args, nullableText(patch.Bio))
		sets = append(sets, fmt.Sprintf("bio = $%d", len(args)))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE profiles SET %s
		 WHERE user_id = $%d
		 RETURNING %s`, strings.Join(sets, ", "), len(args), profileColumns)
	return scanProfile(r.db.QueryRowContext(ctx, query, args...))
}

func (r *PostgresRepository) SetAvatarURL(ctx context.Context, userID, url string) (*models.Profile, error) {
	query := `UPDATE profiles SET avatar_url = $1, updated_at = now()
		 WHERE user_id = $2
		 RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRowContext(ctx, query, url, userID))
}
