package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.mongodb.org/mongo-driver/v2/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestClassifyDBErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: "timeout"},
		{name: "canceled", err: context.Canceled, want: "canceled"},
		{name: "duplicate", err: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, want: "duplicate_key"},
		{name: "command", err: mongo.CommandError{Code: 13, Name: "Unauthorized"}, want: "mongo_Unauthorized"},
		{name: "disconnected", err: mongo.ErrClientDisconnected, want: "disconnected"},
		{name: "other", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDBErr(tt.err); got != tt.want {
				t.Fatalf("classifyDBErr(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestObserveDB_CountsErrorsButNotMisses(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	_ = p.ObserveDB("users.get_by_email", func() error { return mongo.ErrNoDocuments })
	_ = p.ObserveDB("users.create", func() error { return context.DeadlineExceeded })

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("users.create", "timeout")); got != 1 {
		t.Fatalf("expected one timeout error, got %v", got)
	}

	if got := testutil.CollectAndCount(p.DbErrorsTotal); got != 1 {
		t.Fatalf("a not-found lookup must not count as an error, got %d series", got)
	}
}

func TestObserveDB_NilProm(t *testing.T) {
	var p *Prom

	want := errors.New("boom")
	if err := p.ObserveDB("op", func() error { return want }); err != want {
		t.Fatalf("expected passthrough error, got %v", err)
	}

	p.CacheResult("skills", true)
}

func TestCacheResult(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	p.CacheResult("skills", true)
	p.CacheResult("skills", false)
	p.CacheResult("skills", false)

	if got := testutil.ToFloat64(p.CacheLookups.WithLabelValues("skills", "miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "prod")

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(WithRequestID(context.Background(), "req-1"), "op")
	log.InfoContext(ctx, "inside span")
	span.End()

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}

	if rec["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("expected trace_id in log record, got %v", rec)
	}

	if rec["request_id"] != "req-1" {
		t.Fatalf("expected request_id in log record, got %v", rec)
	}

	buf.Reset()
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug records should be dropped outside dev, got %s", buf.String())
	}
}

func TestInitTracer_NoEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracerConfig{ServiceName: "test"})
	if err != nil {
		t.Fatalf("InitTracer error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
