package repository

import (
	"context"
	"time"

	"donorlink/internal/chatbot"
	"donorlink/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DonationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDonationRepository(db *pgxpool.Pool, logger *zap.Logger) *DonationRepository {
	return &DonationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	query := squirrel.Insert("donations").
		Columns("id", "donor_id", "blood_bank", "units", "donation_date", "created_at").
		Values(donation.ID, donation.DonorID, donation.BloodBank, donation.Units, donation.DonationDate, donation.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, limit, offset int) ([]*models.Donation, error) {
	query := squirrel.Select("id", "donor_id", "blood_bank", "units", "donation_date", "created_at").
		From("donations").
		Where(squirrel.Eq{"donor_id": donorID}).
		OrderBy("donation_date DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.BloodBank, &d.Units, &d.DonationDate, &d.CreatedAt); err != nil {
			return nil, err
		}
		donations = append(donations, &d)
	}

	return donations, nil
}

// GetDonorProfile returns the donation-history aggregate used by the chat
// personalization: total donation count and the most recent donation date.
func (r *DonationRepository) GetDonorProfile(ctx context.Context, donorID uuid.UUID) (*chatbot.DonorProfile, error) {
	query := squirrel.Select("COUNT(*)", "MAX(donation_date)").
		From("donations").
		Where(squirrel.Eq{"donor_id": donorID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var count int
	var last *time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count, &last); err != nil {
		return nil, err
	}

	return &chatbot.DonorProfile{
		DonationCount: count,
		LastDonation:  last,
	}, nil
}
