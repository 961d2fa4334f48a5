package dto

type CreateDonationRequest struct {
	DonorID      string `json:"donor_id" validate:"required,uuid"`
	BloodBank    string `json:"blood_bank" validate:"required"`
	Units        int    `json:"units"`
	DonationDate string `json:"donation_date,omitempty"`
}

type DonationResponse struct {
	ID           string `json:"id"`
	DonorID      string `json:"donor_id"`
	BloodBank    string `json:"blood_bank"`
	Units        int    `json:"units"`
	DonationDate string `json:"donation_date"`
	CreatedAt    string `json:"created_at"`
}
