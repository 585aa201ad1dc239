package pagination

import (
	"encoding/base64"
	"testing"
)

func TestLimitClamps(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{0, 50},
		{-3, 50},
		{25, 25},
		{200, 200},
		{5000, 200},
	}
	for _, tc := range cases {
		if got := (Pagination{PageSize: tc.size}).Limit(); got != tc.want {
			t.Fatalf("Limit(%d) = %d, want %d", tc.size, got, tc.want)
		}
	}
}

func TestOffsetDecodesToken(t *testing.T) {
	token := base64.URLEncoding.EncodeToString([]byte("150"))
	if got := (Pagination{PageToken: token}).Offset(); got != 150 {
		t.Fatalf("Offset = %d, want 150", got)
	}
}

func TestOffsetRestartsOnBadToken(t *testing.T) {
	for _, token := range []string{"", "  ", "not base64!", base64.URLEncoding.EncodeToString([]byte("abc")), base64.URLEncoding.EncodeToString([]byte("-5"))} {
		if got := (Pagination{PageToken: token}).Offset(); got != 0 {
			t.Fatalf("Offset(%q) = %d, want 0", token, got)
		}
	}
}

func TestNextToken(t *testing.T) {
	p := Pagination{PageSize: 10}

	if token := p.NextToken(4); token != "" {
		t.Fatalf("partial page should end paging, got %q", token)
	}

	token := p.NextToken(10)
	if token == "" {
		t.Fatalf("full page should produce a next token")
	}
	next := Pagination{PageToken: token, PageSize: 10}
	if got := next.Offset(); got != 10 {
		t.Fatalf("next offset = %d, want 10", got)
	}
	if got := (Pagination{PageToken: next.NextToken(10), PageSize: 10}).Offset(); got != 20 {
		t.Fatalf("second page offset = %d, want 20", got)
	}
}
