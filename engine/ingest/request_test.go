package ingest

import (
	"errors"
	"testing"

	"github.com/sporez/cardforge/engine/domain"
)

func TestParseRequestShapes(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantLinks int
		wantCards int
	}{
		{"links", `{"links":["https://a.com","https://b.com"]}`, 2, 0},
		{"single url", `{"url":"https://a.com"}`, 1, 0},
		{"cards", `{"cards":[{"name":"A"},{"name":"B"}]}`, 0, 2},
		{"items", `{"items":[{"title":"A"}]}`, 0, 1},
		{"crawl results", `{"results":[{"url":"https://a.com","cardName":"A"}]}`, 0, 1},
		{"data wrapper", `{"data":{"links":["https://a.com"],"cards":[{"name":"A"}]}}`, 1, 1},
		{"mixed", `{"url":"https://a.com","cards":[{"name":"A"}]}`, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tc.body))
			if err != nil {
				t.Fatalf("ParseRequest: %v", err)
			}
			if len(req.Links) != tc.wantLinks || len(req.Cards) != tc.wantCards {
				t.Fatalf("links=%d cards=%d, want %d/%d", len(req.Links), len(req.Cards), tc.wantLinks, tc.wantCards)
			}
		})
	}
}

func TestParseRequestSession(t *testing.T) {
	req, err := ParseRequest([]byte(`{"session":"sess-abc","url":"https://a.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Session != "sess-abc" {
		t.Fatalf("session = %q", req.Session)
	}

	req, err = ParseRequest([]byte(`{"data":{"session":"sess-nested","url":"https://a.com"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Session != "sess-nested" {
		t.Fatalf("nested session = %q", req.Session)
	}
}

func TestParseRequestRejectsBadInput(t *testing.T) {
	if _, err := ParseRequest([]byte(`not json`)); !errors.Is(err, domain.ErrInvalidBody) {
		t.Fatalf("err = %v, want invalid body", err)
	}
	if _, err := ParseRequest([]byte(`[]`)); !errors.Is(err, domain.ErrInvalidBody) {
		t.Fatalf("err = %v, want invalid body for non-object", err)
	}
	if _, err := ParseRequest([]byte(`{"session":"s"}`)); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("err = %v, want empty batch", err)
	}
	if _, err := ParseRequest([]byte(`{"links":[]}`)); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Fatalf("err = %v, want empty batch for empty links", err)
	}
}

func TestSession(t *testing.T) {
	if got := Session("sess-fixed"); got != "sess-fixed" {
		t.Fatalf("session = %q", got)
	}
	minted := Session("")
	if len(minted) <= len("sess-") || minted[:5] != "sess-" {
		t.Fatalf("minted session = %q", minted)
	}
	if Session("") == minted {
		t.Fatal("minted sessions must differ")
	}
}
