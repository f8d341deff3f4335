package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// ErrNoRecords is returned when the input holds no card with user content.
var ErrNoRecords = errors.New(config.ErrNoRecords)

// Source describes where an import reads from.
type Source struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV export URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password, looked up in Credentials when empty
}

// Importer reads address book exports and turns every card into a record.
type Importer struct {
	Fetcher     VCardFetcher // Interface for network abstraction.
	Credentials Credentials  // Optional password store for web sources.
}

// Import acquires the source, splits it into cards and parses each of them.
// Cancellation is checked between cards.
func (im *Importer) Import(ctx context.Context, src Source) ([]*vcf.Record, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, src.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := vcf.ReadText(reader)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}

	records, err := ParseCards(ctx, text)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgImportFinished,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, CountCards(strings.NewReader(text))),
			slog.Int(config.LogKeyParsed, len(records)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, nil
}

// ParseCards parses every card of text. Cards without any user content are
// skipped. ErrNoRecords is returned when nothing is left.
func ParseCards(ctx context.Context, text string) ([]*vcf.Record, error) {
	cards := vcf.Split(text)
	records := make([]*vcf.Record, 0, len(cards))
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r := vcf.Parse(card)
		if r.IsEmpty() {
			slog.Warn(config.MsgSkippedEmpty, config.LogKeyComponent, config.CompEngine)
			continue
		}
		slog.Debug(config.MsgCardParsed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, r.FullName())
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (im *Importer) acquireStream(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, im.password(src))
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// password returns the explicit password, or the stored one for WebUser.
// A lookup failure is not fatal: the server may not require authentication.
func (im *Importer) password(src Source) string {
	if src.WebPass != "" || src.WebUser == "" || im.Credentials == nil {
		return src.WebPass
	}
	pass, err := im.Credentials.Password(src.WebUser)
	if err != nil {
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyUser, src.WebUser,
			config.LogKeyError, err)
		return ""
	}
	return pass
}

// CountCards counts the cards an independent vCard decoder accepts in r.
// Malformed cards are logged and skipped.
func CountCards(r io.Reader) int {
	decoder := vcard.NewDecoder(r)
	count := 0
	for {
		_, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return count
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return count
			}
			continue
		}
		count++
	}
}
