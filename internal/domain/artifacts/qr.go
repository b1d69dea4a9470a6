package artifacts

import (
	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePx = 256

// QRPNG codifica el payload como QR y devuelve el PNG.
func QRPNG(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, qrSizePx)
}
