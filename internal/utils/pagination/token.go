package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Tokens order on (document date, created_at) so rows sharing a date page
// deterministically. RFC3339Nano keeps the created_at tiebreaker exact.
const timeFormat = time.RFC3339Nano

// EncodeToken builds an opaque cursor from a document date (entry date,
// invoice date, payment date) and the row's creation time.
func EncodeToken(docDate time.Time, createdAt time.Time) string {
	raw := fmt.Sprintf("%s|%s", docDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor produced by EncodeToken back into its document
// date and creation time.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (missing separator)")
	}

	docDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (created_at parse): %w", err)
	}

	return docDate, createdAt, nil
}
