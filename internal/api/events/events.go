// Package events provides a small in-process event bus fired after CRUD
// writes. CRUD services do not override every method; the base Mongo service
// emits events, and reaction logic (affiliate attribution, cache refresh)
// registers through OnDataChanged.
package events

import (
	"context"
	"sync"
)

// CRUD operation kinds.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// DataChangeEvent describes one data change. Document is the record after
// the change (nil for deletes).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	Document       interface{}
}

// DataChangeHandler reacts to a data change.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
)

// OnDataChanged registers a handler. Called during init.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged fans the event out to all handlers. Each handler runs in
// its own goroutine with panic recovery so one broken handler cannot affect
// the others or the caller.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn DataChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Logger may not be initialized when events fire early.
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
