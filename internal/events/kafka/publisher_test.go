package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/console-bank-ledger/internal/models/events"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	ev := events.TransactionRecorded{
		EventID:    "e-1",
		Kind:       events.KindDeposit,
		Amount:     decimal.NewFromInt(100),
		Balance:    decimal.NewFromInt(100),
		Date:       "2026-10-19",
		OccurredAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("messages=%d want=1", len(w.msgs))
	}

	var got events.TransactionRecorded
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatal(err)
	}
	if got.EventID != "e-1" || !got.Amount.Equal(ev.Amount) || got.Kind != events.KindDeposit {
		t.Fatalf("decoded %+v", got)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("Close: err=%v closed=%v", err, w.closed)
	}
}

func TestPublishErrors(t *testing.T) {
	brokerErr := errors.New("leader not available")
	p := &Publisher{writer: &fakeWriter{err: brokerErr}}

	if err := p.Publish(context.Background(), map[string]int{"a": 1}); !errors.Is(err, brokerErr) {
		t.Fatalf("want wrapped writer error, got %v", err)
	}
	if err := p.Publish(context.Background(), make(chan int)); err == nil {
		t.Fatal("want encode error for unencodable event")
	}
}

func TestNewPublisherTopic(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "ledger-events")
	w, ok := p.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("writer type %T", p.writer)
	}
	if w.Topic != "ledger-events" {
		t.Fatalf("topic=%q", w.Topic)
	}
}
