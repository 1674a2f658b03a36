package pkg

import (
	"github.com/skip2/go-qrcode"
)

// GenerateQRCode 生成二维码 PNG
func GenerateQRCode(text string) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, 256)
}
