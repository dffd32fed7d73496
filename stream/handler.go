// Package stream turns DynamoDB Streams records of a document table into
// version change notifications.
package stream

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/dynodocs/store"
)

// Stream event names.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// Change describes one document write seen on the stream.
type Change struct {
	// Event is the stream event name (INSERT, MODIFY or REMOVE).
	Event string

	// Key is the document's primary key.
	Key store.Key

	// OldVersion is the version token before the write ("" for inserts).
	OldVersion string

	// NewVersion is the version token after the write ("" for removes).
	NewVersion string

	// NewImage is the document after the write. Nil for removes or when the
	// stream view type carries no new image.
	NewImage store.Item
}

// Listener receives document changes.
type Listener interface {
	OnChange(ctx context.Context, c Change) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, c Change) error

// OnChange calls f(ctx, c).
func (f ListenerFunc) OnChange(ctx context.Context, c Change) error {
	return f(ctx, c)
}

// Handler processes DynamoDB stream events for a document table.
type Handler struct {
	versionAttr string
	listener    Listener
	logger      *slog.Logger
}

// NewHandler creates a stream handler. versionAttr defaults to
// store.VersionAttribute when empty.
func NewHandler(versionAttr string, listener Listener, logger *slog.Logger) *Handler {
	if versionAttr == "" {
		versionAttr = store.VersionAttribute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		versionAttr: versionAttr,
		listener:    listener,
		logger:      logger,
	}
}

// HandleEvent dispatches every record of event to the listener, in order.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleEvent(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := h.processRecord(ctx, record); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"error", err,
			)
			return err // Lambda retries the batch
		}
	}
	return nil
}

// processRecord converts a single stream record and hands it to the listener.
func (h *Handler) processRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	change, ok := h.changeOf(record)
	if !ok {
		return nil
	}

	h.logger.Debug("document changed",
		"event", change.Event,
		"oldVersion", change.OldVersion,
		"newVersion", change.NewVersion,
	)

	if h.listener == nil {
		return nil
	}
	return h.listener.OnChange(ctx, change)
}

// changeOf builds a Change from record. It reports false for records that
// are not document version changes.
func (h *Handler) changeOf(record events.DynamoDBEventRecord) (Change, bool) {
	c := Change{
		Event:      record.EventName,
		Key:        store.Key(ConvertImage(record.Change.Keys)),
		OldVersion: getStringAttr(record.Change.OldImage, h.versionAttr),
		NewVersion: getStringAttr(record.Change.NewImage, h.versionAttr),
	}
	if record.Change.NewImage != nil {
		c.NewImage = ConvertImage(record.Change.NewImage)
	}

	switch record.EventName {
	case EventInsert, EventRemove:
		return c, true
	case EventModify:
		// Writes that did not go through the client keep the old token.
		return c, c.OldVersion != c.NewVersion
	}
	return Change{}, false
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}
