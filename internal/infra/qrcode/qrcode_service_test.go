package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateReservationQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	reservationID := uuid.New()

	qrBytes, err := service.GenerateReservationQR(reservationID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParseReservationQR(t *testing.T) {
	service := NewQRCodeService(256, "M")
	reservationID := uuid.New()

	data := QRCodeData{
		ReservationID: reservationID.String(),
		Type:          "reservation",
	}
	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	parsed, err := service.ParseReservationQR(string(jsonData))
	require.NoError(t, err)
	assert.Equal(t, reservationID, parsed)
}

func TestQRCodeService_ParseReservationQR_Invalid(t *testing.T) {
	service := NewQRCodeService(256, "M")

	t.Run("not JSON", func(t *testing.T) {
		_, err := service.ParseReservationQR("not-json")
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		jsonData, err := json.Marshal(QRCodeData{
			ReservationID: uuid.NewString(),
			Type:          "coupon",
		})
		require.NoError(t, err)

		_, err = service.ParseReservationQR(string(jsonData))
		assert.Error(t, err)
	})

	t.Run("bad uuid", func(t *testing.T) {
		jsonData, err := json.Marshal(QRCodeData{
			ReservationID: "not-a-uuid",
			Type:          "reservation",
		})
		require.NoError(t, err)

		_, err = service.ParseReservationQR(string(jsonData))
		assert.Error(t, err)
	})
}
