package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
)

const timeFormat = time.RFC3339Nano

// EncodeCursor turns a keyset position into an opaque token for the next page.
func EncodeCursor(cursor domain.PageCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", cursor.CreatedAt.Format(timeFormat), cursor.ID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor. An empty token means the first page.
func DecodeCursor(token string) (*domain.PageCursor, error) {
	if token == "" {
		return nil, nil
	}
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}
	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return &domain.PageCursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

// NextToken returns the token for the page after a full page ending at last, or nil when
// the page was short.
func NextToken(pageLen, limit int, last domain.PageCursor) *string {
	if limit <= 0 || pageLen < limit {
		return nil
	}
	token := EncodeCursor(last)
	return &token
}
