package broker

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishDeliversToSubscriber(t *testing.T) {
	b := NewInMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	ch, err := b.Subscribe(ctx, "svdcheck.findings", "ci")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := b.Publish(ctx, "svdcheck.findings", "run-1", []byte(`{"code":"M305"}`)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-ch:
		if msg.Topic != "svdcheck.findings" {
			t.Errorf("Topic = %q, want %q", msg.Topic, "svdcheck.findings")
		}
		if msg.Key != "run-1" {
			t.Errorf("Key = %q, want %q", msg.Key, "run-1")
		}
		if string(msg.Value) != `{"code":"M305"}` {
			t.Errorf("Value = %q", msg.Value)
		}
		if msg.Offset != 0 {
			t.Errorf("Offset = %d, want 0", msg.Offset)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemoryTopicIsolation(t *testing.T) {
	b := NewInMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	findings, err := b.Subscribe(ctx, "svdcheck.findings", "ci")
	if err != nil {
		t.Fatalf("Subscribe(findings) error = %v", err)
	}
	other, err := b.Subscribe(ctx, "svdcheck.other", "ci")
	if err != nil {
		t.Fatalf("Subscribe(other) error = %v", err)
	}

	if err := b.Publish(ctx, "svdcheck.findings", "k", []byte("v")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case <-findings:
	case <-time.After(time.Second):
		t.Fatal("subscriber on published topic received nothing")
	}

	select {
	case msg := <-other:
		t.Fatalf("subscriber on other topic received %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInMemoryOffsetsIncrementPerTopic(t *testing.T) {
	b := NewInMemoryBroker()
	defer b.Close()

	ctx := context.Background()
	ch, _ := b.Subscribe(ctx, "svdcheck.findings", "ci")

	for i := 0; i < 3; i++ {
		if err := b.Publish(ctx, "svdcheck.findings", "k", []byte("v")); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	for want := int64(0); want < 3; want++ {
		msg := <-ch
		if msg.Offset != want {
			t.Errorf("Offset = %d, want %d", msg.Offset, want)
		}
	}
}

func TestInMemoryClosedBrokerRejectsOperations(t *testing.T) {
	b := NewInMemoryBroker()

	ctx := context.Background()
	ch, err := b.Subscribe(ctx, "svdcheck.findings", "ci")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, ok := <-ch; ok {
		t.Error("subscriber channel still open after Close()")
	}

	if err := b.Publish(ctx, "svdcheck.findings", "k", []byte("v")); err == nil {
		t.Error("Publish() after Close() succeeded, want error")
	}
	if _, err := b.Subscribe(ctx, "svdcheck.findings", "ci"); err == nil {
		t.Error("Subscribe() after Close() succeeded, want error")
	}

	// Close is idempotent.
	if err := b.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
