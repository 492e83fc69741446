package service

import "github.com/google/uuid"

// QRCodeService generates and parses the check-in QR code a client receives
// when a seller confirms their reservation.
type QRCodeService interface {
	// GenerateReservationQR renders a PNG QR encoding the reservation id.
	GenerateReservationQR(reservationID uuid.UUID) ([]byte, error)

	// ParseReservationQR extracts the reservation id from scanned QR data.
	ParseReservationQR(qrData string) (uuid.UUID, error)
}
