// Package qr checks whether a VCF document fits in a QR code.
package qr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tartampluch/go-vcfedit/internal/config"
)

// ErrInvalidLevel is returned by MaxBytesFor for an unsupported correction level.
var ErrInvalidLevel = errors.New(config.ErrQRLevel)

// Byte capacities of a version 40 symbol in binary mode.
const (
	LevelM = config.QRMaxBytesLevelM
	LevelL = config.QRMaxBytesLevelL
)

// Status describes how much of the QR capacity a document uses.
type Status struct {
	ByteSize     int     `json:"byteSize"`
	MaxBytes     int     `json:"maxBytes"`
	UsagePercent float64 `json:"usagePercent"` // 0..1, above 1 when too large
	Valid        bool    `json:"valid"`
	Warning      bool    `json:"warning"` // valid but above the warning threshold
	Message      string  `json:"message"`
}

// Remaining returns the unused capacity; negative when the document is too large.
func (s Status) Remaining() int {
	return s.MaxBytes - s.ByteSize
}

// MaxBytesFor maps an error correction level ("L" or "M") to its capacity.
func MaxBytesFor(level string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return LevelL, nil
	case "M", "":
		return LevelM, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// Check measures doc in UTF-8 bytes against maxBytes. A non-positive maxBytes
// means LevelM.
func Check(doc string, maxBytes int) Status {
	if maxBytes <= 0 {
		maxBytes = LevelM
	}

	size := len(doc)
	s := Status{
		ByteSize:     size,
		MaxBytes:     maxBytes,
		UsagePercent: float64(size) / float64(maxBytes),
		Valid:        size <= maxBytes,
	}
	s.Warning = s.Valid && s.UsagePercent >= config.QRWarningThreshold

	switch {
	case !s.Valid:
		s.Message = fmt.Sprintf(config.QRMsgExceeded, humanize.Comma(int64(-s.Remaining())))
	case s.Warning:
		s.Message = fmt.Sprintf(config.QRMsgApproaching, humanize.Comma(int64(s.Remaining())))
	default:
		s.Message = fmt.Sprintf(config.QRMsgUsage, humanize.Comma(int64(size)), humanize.Comma(int64(maxBytes)))
	}
	return s
}
