// Package events defines the notification types published on the event bus.
package events

import "time"

// SchemaBuildStart is emitted when a schema derivation begins.
type SchemaBuildStart struct{}

// SchemaBuildFinish is emitted when a schema derivation completes.
type SchemaBuildFinish struct {
	Types    int
	Err      error
	Duration time.Duration
}

// FetchStart is emitted before a listing fetch runs.
type FetchStart struct {
	Field    string
	Offset   int
	Limit    int
	TypeName string
	ID       string
}

// FetchFinish is emitted after a listing fetch completes.
type FetchFinish struct {
	Field    string
	Count    int
	Err      error
	Duration time.Duration
}
