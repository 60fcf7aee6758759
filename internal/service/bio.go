package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/bioqr/bioqr-go/internal/model"
)

var (
	ErrBioNameRequired = fmt.Errorf("%w: name is required", ErrValidation)
	ErrBioTooLarge     = fmt.Errorf("%w: bio data is too large to encode", ErrValidation)
)

const (
	// maxQRPayload is the byte-mode capacity of a version 40 symbol at medium recovery.
	maxQRPayload  = 2331
	defaultQRSize = 256
	pngDataURL    = "data:image/png;base64,"
)

// BioService turns submitted bio data into a QR code image.
type BioService struct {
	size int
}

// NewBioService creates a new BioService rendering square PNGs of size pixels.
func NewBioService(size int) *BioService {
	if size <= 0 {
		size = defaultQRSize
	}
	return &BioService{size: size}
}

// GenerateQR encodes the bio as JSON and returns it as a PNG QR code data URL.
func (s *BioService) GenerateQR(ctx context.Context, req model.BioRequest) (model.QRResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.QRResponse{}, ErrBioNameRequired
	}
	req.Projects = compactEntries(req.Projects)
	req.Experience = compactEntries(req.Experience)
	req.Education = compactEntries(req.Education)

	payload, err := json.Marshal(req)
	if err != nil {
		return model.QRResponse{}, fmt.Errorf("encode bio: %w", err)
	}
	if len(payload) > maxQRPayload {
		return model.QRResponse{}, ErrBioTooLarge
	}

	if err := ctx.Err(); err != nil {
		return model.QRResponse{}, err
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, s.size)
	if err != nil {
		return model.QRResponse{}, errors.Join(ErrBioTooLarge, err)
	}

	return model.QRResponse{
		QRCode: pngDataURL + base64.StdEncoding.EncodeToString(png),
		Bio:    req,
	}, nil
}

// compactEntries drops blank list entries; forms submit an empty first row.
func compactEntries(entries []string) []string {
	var kept []string
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			kept = append(kept, e)
		}
	}
	return kept
}
