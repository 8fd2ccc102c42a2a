package barcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
)

const (
	// EAN-13 encodes a 12 digit payload; the symbology computes the 13th
	// check digit itself.
	payloadDigits = 12

	imageWidth  = 190
	imageHeight = 80

	dataURIPrefix = "data:image/png;base64,"
)

var ErrInvalidTicketID = errors.New("ticket id is not a valid EAN-13 payload")

// RenderPNG encodes ticketID as an EAN-13 barcode and returns the PNG
// bytes. ticketID must be exactly 12 numeric digits.
func RenderPNG(ticketID string) ([]byte, error) {
	if err := validateTicketID(ticketID); err != nil {
		return nil, err
	}

	code, err := ean.Encode(ticketID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTicketID, err)
	}

	scaled, err := barcode.Scale(code, imageWidth, imageHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode barcode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderDataURI renders ticketID as an EAN-13 PNG embedded in a base64
// data URI, suitable for inlining into an email template.
func RenderDataURI(ticketID string) (string, error) {
	img, err := RenderPNG(ticketID)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(img), nil
}

func validateTicketID(ticketID string) error {
	if len(ticketID) != payloadDigits {
		return fmt.Errorf("%w: expected %d digits, got %d", ErrInvalidTicketID, payloadDigits, len(ticketID))
	}
	for _, r := range ticketID {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: non-numeric character %q", ErrInvalidTicketID, r)
		}
	}
	return nil
}
