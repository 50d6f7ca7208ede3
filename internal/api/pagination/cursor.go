package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// VenueCursor encodes a timestamp + ULID for stable venue ordering.
type VenueCursor struct {
	Timestamp time.Time
	ULID      string
}

// EncodeVenueCursor encodes the cursor as base64(ts_unix_nano:ULID).
func EncodeVenueCursor(timestamp time.Time, ulid string) string {
	value := fmt.Sprintf("%d:%s", timestamp.UTC().UnixNano(), strings.ToUpper(strings.TrimSpace(ulid)))
	return base64.RawURLEncoding.EncodeToString([]byte(value))
}

// DecodeVenueCursor decodes base64(ts_unix_nano:ULID) into a VenueCursor.
func DecodeVenueCursor(cursor string) (VenueCursor, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return VenueCursor{}, ErrInvalidCursor
	}
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return VenueCursor{}, ErrInvalidCursor
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return VenueCursor{}, ErrInvalidCursor
	}
	unixNano, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return VenueCursor{}, ErrInvalidCursor
	}
	if strings.TrimSpace(parts[1]) == "" {
		return VenueCursor{}, ErrInvalidCursor
	}
	return VenueCursor{Timestamp: time.Unix(0, unixNano).UTC(), ULID: strings.ToUpper(strings.TrimSpace(parts[1]))}, nil
}
