package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeEntryToken creates a cursor positioned after a ledger entry. Entries
// are paged by posting date, ties broken by chain sequence.
func EncodeEntryToken(postingDate time.Time, sequence int64) string {
	return EncodeMultiFieldToken(postingDate.UTC().Format(timeFormat), strconv.FormatInt(sequence, 10))
}

// DecodeEntryToken parses a cursor created by EncodeEntryToken.
func DecodeEntryToken(token string) (time.Time, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	postingDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (posting date parse): %w", err)
	}
	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	return postingDate, sequence, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
