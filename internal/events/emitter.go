// Package events records audit events for processed push deliveries. The
// emitter batches writes into MongoDB so webhook handling never blocks on
// the event store.
package events

import (
	"context"
	"sync"
	"time"

	"githook/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Em is the process-wide emitter; nil when no event store is configured.
// Every wrapper is nil-safe, so callers never guard emits themselves.
var Em *Emitter

type Config struct {
	Buffer     int
	BatchSize  int
	FlushEvery time.Duration
}

var defaultConfig = Config{
	Buffer:     1000,
	BatchSize:  50,
	FlushEvery: 2 * time.Second,
}

type Emitter struct {
	coll *mongo.Collection
	buf  chan models.Event
	cfg  Config

	wg        sync.WaitGroup
	onceClose sync.Once

	InsertOne  func(context.Context, models.Event) error
	InsertMany func(context.Context, []models.Event) error
}

func NewEmitter(coll *mongo.Collection) *Emitter {
	return NewEmitterWithConfig(coll, defaultConfig)
}

func NewEmitterWithConfig(coll *mongo.Collection, cfg Config) *Emitter {
	e := &Emitter{
		coll: coll,
		buf:  make(chan models.Event, cfg.Buffer),
		cfg:  cfg,
	}

	e.InsertOne = func(ctx context.Context, evt models.Event) error {
		_, err := e.coll.InsertOne(ctx, evt)
		return err
	}

	e.InsertMany = func(ctx context.Context, evts []models.Event) error {
		docs := make([]interface{}, len(evts))
		for i, evt := range evts {
			docs[i] = evt
		}

		_, err := e.coll.InsertMany(ctx, docs)
		return err
	}

	e.wg.Add(1)
	go e.worker()

	return e
}

func (e *Emitter) Close() {
	e.onceClose.Do(func() {
		close(e.buf)
		e.wg.Wait()
	})
}

func (e *Emitter) emit(evt models.Event) {
	if e == nil {
		return
	}

	evt.TimeStamp = time.Now().UTC()

	select {
	case e.buf <- evt:
	default:
		// Buffer full: write synchronously rather than drop the event.
		ctx, cancel := context.WithTimeout(
			context.Background(),
			2*time.Second,
		)
		defer cancel()

		_ = e.InsertOne(ctx, evt)
	}
}

func (e *Emitter) worker() {
	defer e.wg.Done()

	batch := make([]models.Event, 0, e.cfg.BatchSize)
	timer := time.NewTimer(e.cfg.FlushEvery)

	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			timer.Reset(e.cfg.FlushEvery)
			return
		}

		ctx, cancel := context.WithTimeout(
			context.Background(),
			2*time.Second,
		)

		_ = e.InsertMany(ctx, batch)

		cancel()

		batch = batch[:0]
		timer.Reset(e.cfg.FlushEvery)
	}

	for {
		select {
		case evt, ok := <-e.buf:
			if !ok {
				flush()
				return
			}

			batch = append(batch, evt)

			if len(batch) >= e.cfg.BatchSize {
				flush()
			}
		case <-timer.C:
			flush()
		}
	}
}
