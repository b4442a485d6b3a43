package postgres

import (
	"context"
	"errors"
	"recruitflow-backend/internal/domain"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type partnerRepo struct {
	db *pgxpool.Pool
}

// NewPartnerRepository creates a new partner repository
func NewPartnerRepository(db *pgxpool.Pool) domain.PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	query := `
		INSERT INTO partners (user_id, organisation_name, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	partner.CreatedAt = now
	partner.UpdatedAt = now
	if partner.Status == "" {
		partner.Status = domain.PartnerStatusPending
	}

	return r.db.QueryRow(ctx, query,
		partner.UserID, partner.OrganisationName, partner.Phone, partner.Status,
		partner.CreatedAt, partner.UpdatedAt,
	).Scan(&partner.ID)
}

func (r *partnerRepo) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	query := `
		SELECT id, user_id, organisation_name, phone, status, created_at, updated_at
		FROM partners
		WHERE id = $1`

	var p domain.Partner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.OrganisationName, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Partner, error) {
	query := `
		SELECT id, user_id, organisation_name, phone, status, created_at, updated_at
		FROM partners
		WHERE user_id = $1`

	var p domain.Partner
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.OrganisationName, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *partnerRepo) ListByStatus(ctx context.Context, status string) ([]domain.Partner, error) {
	query := `
		SELECT p.id, p.user_id, p.organisation_name, p.phone, p.status, p.created_at, p.updated_at,
		       u.name, u.email
		FROM partners p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.status = $1
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []domain.Partner
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.OrganisationName, &p.Phone, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.UserName, &p.UserEmail,
		); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// Approve flips the partner to APPROVED and promotes the owning user to
// the PARTNER role. Both updates share one transaction so a failure
// leaves neither applied.
func (r *partnerRepo) Approve(ctx context.Context, partnerID int64, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	result, err := tx.Exec(ctx,
		`UPDATE partners SET status = $2, updated_at = $3 WHERE id = $1`,
		partnerID, domain.PartnerStatusApproved, now,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE id = $1`,
		userID, domain.RolePartner, now,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *partnerRepo) UpdateStatus(ctx context.Context, partnerID int64, status string) error {
	query := `UPDATE partners SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, partnerID, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *partnerRepo) GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, organisation_name FROM partners WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
