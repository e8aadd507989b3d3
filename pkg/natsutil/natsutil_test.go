package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nats-io/nats.go"
)

type capturePublisher struct {
	msg *nats.Msg
	err error
}

func (p *capturePublisher) PublishMsg(m *nats.Msg) error {
	p.msg = m
	return p.err
}

func TestPublishMarshalsJSON(t *testing.T) {
	p := &capturePublisher{}
	type drop struct {
		Slug string `json:"slug"`
	}

	if err := Publish(context.Background(), p, "cardforge.publish", drop{Slug: "quantum-chips"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if p.msg == nil || p.msg.Subject != "cardforge.publish" {
		t.Fatalf("msg = %+v", p.msg)
	}

	var got drop
	if err := json.Unmarshal(p.msg.Data, &got); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if got.Slug != "quantum-chips" {
		t.Fatalf("slug = %q", got.Slug)
	}
}

func TestPublishPropagatesError(t *testing.T) {
	want := errors.New("connection closed")
	p := &capturePublisher{err: want}

	if err := Publish(context.Background(), p, "cardforge.publish", map[string]string{}); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestPublishRejectsUnmarshalable(t *testing.T) {
	p := &capturePublisher{}
	if err := Publish(context.Background(), p, "cardforge.publish", func() {}); err == nil {
		t.Fatal("expected marshal error")
	}
	if p.msg != nil {
		t.Fatal("nothing should be published on marshal failure")
	}
}

func TestHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{}
	c := (*natsHeaderCarrier)(msg)

	if c.Get("traceparent") != "" {
		t.Fatal("empty carrier returned a value")
	}
	c.Set("traceparent", "00-abc-def-01")
	if c.Get("traceparent") != "00-abc-def-01" {
		t.Fatal("set/get roundtrip failed")
	}
	if keys := c.Keys(); len(keys) != 1 {
		t.Fatalf("keys = %v", keys)
	}
}
