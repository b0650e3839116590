// Package kvstore is the persistence layer: a small key-value contract with
// pluggable backends and a JSON adapter on top.
//
// The adapter deliberately trades consistency for availability: a corrupt or
// unreadable value yields the caller's default and a write failure leaves the
// caller's in-memory state authoritative. Failures are never raised to the
// caller as errors, but every call reports what happened in its Result so
// callers and tests can still observe them.
package kvstore

import (
	"context"
	"encoding/json"

	"cashflow/internal/log"
)

// ErrorKind classifies a swallowed storage failure.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	// KindDecode means the stored value existed but was not valid JSON for
	// the destination type.
	KindDecode
	// KindEncode means the value could not be serialized.
	KindEncode
	// KindBackend means the underlying store failed to read or write.
	KindBackend
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// Result reports the outcome of an adapter call. Found is only meaningful
// for reads. Err is retained for logging and assertions; it is never
// returned as a hard failure.
type Result struct {
	Found bool
	Kind  ErrorKind
	Err   error
}

// OK reports whether the call completed without a swallowed failure.
func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Store is the raw byte-level backend contract. Get reports presence
// explicitly so an empty value and a missing key are distinguishable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Adapter wraps a Store with JSON (de)serialization and the swallow-and-log
// failure policy. It behaves identically whether the backend is durable or
// the volatile fallback.
type Adapter struct {
	store  Store
	logger *log.Logger
}

func NewAdapter(store Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Adapter{
		store:  store,
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// Get reads and decodes the value under key into dest. On a missing key,
// backend failure or decode failure, dest is left untouched so the caller's
// pre-filled default survives.
func (a *Adapter) Get(ctx context.Context, key string, dest any) Result {
	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.WarnContext(ctx, "Storage read failed, using default",
			log.FieldKey, key, log.FieldOperation, log.OpRead, log.FieldError, err)
		return Result{Kind: KindBackend, Err: err}
	}
	if !found {
		return Result{}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		a.logger.WarnContext(ctx, "Stored value is corrupt, using default",
			log.FieldKey, key, log.FieldOperation, log.OpRead, log.FieldError, err)
		return Result{Found: true, Kind: KindDecode, Err: err}
	}
	return Result{Found: true}
}

// Set serializes value and persists it under key. Failures are swallowed;
// the caller keeps its in-memory value and persisted state may lag behind
// until the next successful write.
func (a *Adapter) Set(ctx context.Context, key string, value any) Result {
	raw, err := json.Marshal(value)
	if err != nil {
		a.logger.WarnContext(ctx, "Value not serializable, skipping persist",
			log.FieldKey, key, log.FieldOperation, log.OpUpdate, log.FieldError, err)
		return Result{Kind: KindEncode, Err: err}
	}
	if err := a.store.Set(ctx, key, raw); err != nil {
		a.logger.WarnContext(ctx, "Storage write failed, in-memory state retained",
			log.FieldKey, key, log.FieldOperation, log.OpUpdate, log.FieldError, err)
		return Result{Kind: KindBackend, Err: err}
	}
	return Result{}
}

// Delete removes the value under key. Missing keys are not an error.
func (a *Adapter) Delete(ctx context.Context, key string) Result {
	if err := a.store.Delete(ctx, key); err != nil {
		a.logger.WarnContext(ctx, "Storage delete failed",
			log.FieldKey, key, log.FieldOperation, log.OpDelete, log.FieldError, err)
		return Result{Kind: KindBackend, Err: err}
	}
	return Result{}
}

// Close closes the underlying store.
func (a *Adapter) Close() error {
	return a.store.Close()
}
