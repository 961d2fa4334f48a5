package service

import (
	"context"
	"time"

	"donorlink/internal/dto"
	"donorlink/internal/models"
	"donorlink/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DonationService struct {
	donationRepo *repository.DonationRepository
	logger       *zap.Logger
}

func NewDonationService(donationRepo *repository.DonationRepository, logger *zap.Logger) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		logger:       logger,
	}
}

// RecordDonation registers a completed donation for a donor. The donation
// date defaults to now when the request leaves it empty.
func (s *DonationService) RecordDonation(ctx context.Context, req *dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	donorID, err := uuid.Parse(req.DonorID)
	if err != nil {
		return nil, err
	}

	donationDate := time.Now()
	if req.DonationDate != "" {
		donationDate, err = time.Parse(time.RFC3339, req.DonationDate)
		if err != nil {
			return nil, err
		}
	}

	units := req.Units
	if units <= 0 {
		units = 1
	}

	donation := &models.Donation{
		ID:           uuid.New(),
		DonorID:      donorID,
		BloodBank:    req.BloodBank,
		Units:        units,
		DonationDate: donationDate,
		CreatedAt:    time.Now(),
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.logger.Info("Donation recorded",
		zap.String("donor_id", donorID.String()),
		zap.String("blood_bank", donation.BloodBank),
	)

	return toDonationResponse(donation), nil
}

// ListDonations returns a donor's donations, most recent first.
func (s *DonationService) ListDonations(ctx context.Context, donorID uuid.UUID, limit, offset int) ([]dto.DonationResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	donations, err := s.donationRepo.ListByDonor(ctx, donorID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		result = append(result, *toDonationResponse(d))
	}

	return result, nil
}

func toDonationResponse(d *models.Donation) *dto.DonationResponse {
	return &dto.DonationResponse{
		ID:           d.ID.String(),
		DonorID:      d.DonorID.String(),
		BloodBank:    d.BloodBank,
		Units:        d.Units,
		DonationDate: d.DonationDate.Format(time.RFC3339),
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}
