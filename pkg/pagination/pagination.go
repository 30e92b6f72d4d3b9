package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 24
	// MaxLimit caps how many items any page can request.
	MaxLimit = 100
)

const offsetPrefix = "offset:"

// Params holds cursor pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Cursor string
}

// Page describes a window over an ordered result set.
type Page struct {
	Limit      int    `json:"limit"`
	Total      int    `json:"total"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor pointing at offset.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(offsetPrefix + strconv.Itoa(offset)))
}

// ParseCursor decodes a cursor back into its offset. A blank cursor is offset 0.
func ParseCursor(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), offsetPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset %q", raw)
	}
	return offset, nil
}

// Window slices items according to params and reports the next cursor when
// more items remain. The returned slice aliases items.
func Window[T any](items []T, params Params) ([]T, Page, error) {
	limit := NormalizeLimit(params.Limit)
	offset, err := ParseCursor(params.Cursor)
	if err != nil {
		return nil, Page{}, err
	}
	page := Page{Limit: limit, Total: len(items)}
	if offset >= len(items) {
		return []T{}, page, nil
	}
	end := offset + limit
	if end < len(items) {
		page.NextCursor = EncodeCursor(end)
	} else {
		end = len(items)
	}
	return items[offset:end], page, nil
}
