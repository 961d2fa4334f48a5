package models

import (
	"time"

	"github.com/google/uuid"
)

type Donation struct {
	ID           uuid.UUID `db:"id"`
	DonorID      uuid.UUID `db:"donor_id"`
	BloodBank    string    `db:"blood_bank"`
	Units        int       `db:"units"`
	DonationDate time.Time `db:"donation_date"`
	CreatedAt    time.Time `db:"created_at"`
}
