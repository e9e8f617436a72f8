package imagepkg

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinQRSize = 64
	MaxQRSize = 1024
)

// ShareQR returns a PNG QR code encoding link, typically a render URL.
func ShareQR(link string, size int) ([]byte, error) {
	if link == "" {
		return nil, errors.New("qr: empty content")
	}
	size = max(MinQRSize, min(MaxQRSize, size))
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, &EncodeError{Format: FormatPNG, Err: err}
	}
	return png, nil
}
