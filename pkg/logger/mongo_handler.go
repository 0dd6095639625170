package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoQueueSize  = 4096
	mongoBatchSize  = 50
	mongoFlushEvery = 2 * time.Second
)

// LogDocument is the shape written to MongoDB. Request-correlation fields
// are lifted out of attrs so they can be indexed.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	OrderID   any       `bson:"order_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// inserter is the slice of *mongo.Collection the sink uses.
type inserter interface {
	InsertMany(ctx context.Context, docs []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// sink owns the queue and the single writer goroutine shared by every
// handler derived through WithAttrs/WithGroup.
type sink struct {
	col    inserter
	queue  chan LogDocument
	done   chan struct{}
	closed sync.Once
	wg     sync.WaitGroup
}

// MongoHandler is an slog.Handler that ships records to MongoDB in batches.
// Handle never blocks: when the queue is full the record is dropped.
type MongoHandler struct {
	sink   *sink
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
	client *mongo.Client
}

// NewMongoHandler connects to uri and writes into db.collection.
// The caller must call Close to flush pending records.
func NewMongoHandler(ctx context.Context, uri, db, collection string) (*MongoHandler, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(4))
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "time", Value: -1}}},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
	})

	h := newMongoHandler(col, slog.LevelInfo)
	h.client = client
	return h, nil
}

func newMongoHandler(col inserter, level slog.Leveler) *MongoHandler {
	s := &sink{
		col:   col,
		queue: make(chan LogDocument, mongoQueueSize),
		done:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return &MongoHandler{sink: s, level: level}
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	doc := LogDocument{Time: r.Time, Level: r.Level.String(), Msg: r.Message, Attrs: bson.M{}}

	put := func(prefix string, a slog.Attr) {
		switch a.Key {
		case "request_id":
			doc.RequestID = a.Value.String()
		case "order_id":
			doc.OrderID = a.Value.Any()
		default:
			doc.Attrs[prefix+a.Key] = a.Value.Resolve().Any()
		}
	}
	// Attrs from WithAttrs already carry the group prefix in their key.
	for _, a := range h.attrs {
		put("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		put(h.prefix, a)
		return true
	})

	select {
	case h.sink.queue <- doc:
	default:
	}
	return nil
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if a.Key != "request_id" && a.Key != "order_id" {
			a.Key = h.prefix + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// Close flushes queued records and disconnects. Safe to call more than once.
func (h *MongoHandler) Close() {
	h.sink.closed.Do(func() { close(h.sink.done) })
	h.sink.wg.Wait()
	if h.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.client.Disconnect(ctx)
	}
}

func (s *sink) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(mongoFlushEvery)
	defer ticker.Stop()

	batch := make([]any, 0, mongoBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = s.col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= mongoBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for {
				select {
				case doc := <-s.queue:
					batch = append(batch, doc)
				default:
					flush()
					return
				}
			}
		}
	}
}

// MultiHandler fans records out to several handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
