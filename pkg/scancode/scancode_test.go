package scancode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func TestQREncoderEncode(t *testing.T) {
	enc := NewQREncoder()
	data, err := enc.Encode(context.Background(), []byte(`{"po_number":"PO-1"}`))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 256 || b.Dy() != 256 {
		t.Errorf("image size = %dx%d, want 256x256", b.Dx(), b.Dy())
	}
}

func TestQREncoderErrors(t *testing.T) {
	enc := NewQREncoder()

	if _, err := enc.Encode(context.Background(), nil); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("empty payload error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := enc.Encode(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context error = %v", err)
	}

	huge := []byte(strings.Repeat("x", 8000))
	if _, err := enc.Encode(context.Background(), huge); err == nil {
		t.Error("expected error for payload beyond QR capacity")
	}
}

func TestPayloadMarshal(t *testing.T) {
	p := Payload{
		OrderNumber:  "PO-2025-0001",
		Issuer:       "PT Maju Jaya",
		Signer:       "Budi Santoso",
		Position:     "Direktur Utama",
		ApprovedDate: "2025-01-12",
		PrintDate:    "2025-01-15 09:30:00",
	}
	data, err := p.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"po_number":      "PO-2025-0001",
		"subsidiary":     "PT Maju Jaya",
		"director":       "Budi Santoso",
		"position":       "Direktur Utama",
		"approved_date":  "2025-01-12",
		"print_date":     "2025-01-15 09:30:00",
		"signature_type": SignatureTypeDigital,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestEncoderFunc(t *testing.T) {
	boom := errors.New("boom")
	var enc Encoder = EncoderFunc(func(context.Context, []byte) ([]byte, error) { return nil, boom })
	if _, err := enc.Encode(context.Background(), []byte("x")); !errors.Is(err, boom) {
		t.Errorf("EncoderFunc error = %v", err)
	}
}
