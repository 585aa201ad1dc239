package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Pagination carries list-query paging parameters bound from the request.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalCount    int64  `json:"total_count"`
}

// Limit clamps the requested page size.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return defaultPageSize
	}
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}

// Offset decodes the opaque page token. An unreadable token restarts from
// the first page rather than failing the request.
func (p Pagination) Offset() int {
	token := strings.TrimSpace(p.PageToken)
	if token == "" {
		return 0
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// NextToken encodes the offset for the following page, or "" when the page
// was not full.
func (p Pagination) NextToken(returned int) string {
	if returned < p.Limit() {
		return ""
	}
	next := p.Offset() + returned
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(next)))
}
