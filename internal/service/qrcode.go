package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(reference string) ([]byte, error)
}

// DefaultQRGenerator encodes the pickup confirmation link shown at the
// counter when collecting an order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(reference string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/pickup.html?order=%s", g.BaseURL, reference)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
