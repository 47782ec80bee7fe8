// Package scancode encodes digital signature payloads into scannable QR
// images for the signature block of a purchase order.
//
// The renderer only depends on the [Encoder] interface. [QREncoder] is the
// production implementation backed by github.com/skip2/go-qrcode; tests can
// substitute an [EncoderFunc].
//
// Encoding is treated as best-effort enrichment: callers are expected to
// continue without the image when Encode fails.
package scancode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// SignatureTypeDigital tags payloads of digitally verified signatures.
const SignatureTypeDigital = "digital_verified"

// ErrEmptyPayload is returned when there is nothing to encode.
var ErrEmptyPayload = errors.New("scancode: empty payload")

// Encoder turns a payload into PNG image bytes.
type Encoder interface {
	Encode(ctx context.Context, payload []byte) ([]byte, error)
}

// EncoderFunc adapts a function to [Encoder].
type EncoderFunc func(ctx context.Context, payload []byte) ([]byte, error)

// Encode implements [Encoder].
func (f EncoderFunc) Encode(ctx context.Context, payload []byte) ([]byte, error) {
	return f(ctx, payload)
}

// Payload is the signing record embedded in the QR code.
type Payload struct {
	OrderNumber   string `json:"po_number"`
	Issuer        string `json:"subsidiary"`
	Signer        string `json:"director"`
	Position      string `json:"position"`
	ApprovedDate  string `json:"approved_date"`
	PrintDate     string `json:"print_date"`
	SignatureType string `json:"signature_type"`
}

// Marshal returns the JSON encoding of p, defaulting the signature type.
func (p Payload) Marshal() ([]byte, error) {
	if p.SignatureType == "" {
		p.SignatureType = SignatureTypeDigital
	}
	return json.Marshal(p)
}

// QREncoder renders payloads as square PNG QR codes.
type QREncoder struct {
	Level qrcode.RecoveryLevel
	Size  int // image edge in pixels
}

// NewQREncoder returns an encoder with medium error correction and a
// 256 pixel image, which prints sharply at the 60pt signature size.
func NewQREncoder() *QREncoder {
	return &QREncoder{Level: qrcode.Medium, Size: 256}
}

type encodeResult struct {
	png []byte
	err error
}

// Encode implements [Encoder]. It returns ctx.Err() if the context ends
// before encoding finishes.
func (e *QREncoder) Encode(ctx context.Context, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan encodeResult, 1)
	go func() {
		png, err := qrcode.Encode(string(payload), e.Level, e.Size)
		done <- encodeResult{png, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("scancode: encode: %w", r.err)
		}
		return r.png, nil
	}
}
