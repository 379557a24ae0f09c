// Package notification provides the notification entities: the append-only
// dispatch log written for every email/SMS attempt, and the in-app
// notification shown in a user's feed.
package notification

import (
	"errors"
	"fmt"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// Channel identifies the transport a notification was dispatched over.
type Channel string

const (
	// ChannelEmail is the SMTP email transport.
	ChannelEmail Channel = "EMAIL"
	// ChannelSMS is the SMS gateway transport.
	ChannelSMS Channel = "SMS"
)

// Validate checks if the Channel is one of the supported transports.
func (c Channel) Validate() error {
	switch c {
	case ChannelEmail, ChannelSMS:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("channel is invalid",
			fmt.Errorf("%q is not a valid channel", string(c)))
	}
}

// DispatchStatus records the outcome of a single dispatch attempt.
type DispatchStatus string

const (
	// DispatchSent means the transport accepted the message.
	DispatchSent DispatchStatus = "SENT"
	// DispatchFailed means the transport rejected or could not be reached.
	DispatchFailed DispatchStatus = "FAILED"
	// DispatchSkipped means the transport declined without attempting delivery
	// (e.g. unconfigured gateway). Skipped attempts are not logged, so this
	// value never appears in a LogEntry.
	DispatchSkipped DispatchStatus = "SKIPPED"
)

// Validate checks if the DispatchStatus is one of the recorded outcomes.
func (s DispatchStatus) Validate() error {
	switch s {
	case DispatchSent, DispatchFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("dispatch status is invalid",
			fmt.Errorf("%q is not a valid dispatch status", string(s)))
	}
}

// ErrLogEntryIsNotConstructed is returned when a LogEntry was not created
// through its factory method.
var ErrLogEntryIsNotConstructed = errors.New("LogEntry must be created via NewLogEntry or RestoreLogEntry")

// LogEntry is the append-only audit record of one dispatch attempt,
// written regardless of outcome.
type LogEntry struct {
	id                kernel.UUID
	parcelID          kernel.UUID
	channel           Channel
	recipient         string
	templateKey       string
	status            DispatchStatus
	providerMessageID string
	createdAt         time.Time

	isConstructed bool
}

// NewLogEntry creates a dispatch log entry.
func NewLogEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	channel Channel,
	recipient string,
	templateKey string,
	status DispatchStatus,
	providerMessageID string,
	now time.Time,
) (*LogEntry, error) {
	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		channel.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if recipient == "" {
		return nil, errs.NewValueIsRequiredError("recipient")
	}
	if templateKey == "" {
		return nil, errs.NewValueIsRequiredError("template key")
	}

	return &LogEntry{
		id:                id,
		parcelID:          parcelID,
		channel:           channel,
		recipient:         recipient,
		templateKey:       templateKey,
		status:            status,
		providerMessageID: providerMessageID,
		createdAt:         now,
		isConstructed:     true,
	}, nil
}

// RestoreLogEntry reconstructs a dispatch log entry from persistence.
func RestoreLogEntry(
	id kernel.UUID,
	parcelID kernel.UUID,
	channel Channel,
	recipient string,
	templateKey string,
	status DispatchStatus,
	providerMessageID string,
	createdAt time.Time,
) (*LogEntry, error) {
	return NewLogEntry(id, parcelID, channel, recipient, templateKey, status, providerMessageID, createdAt)
}

// Validate ensures the entry was created through a factory method.
func (e *LogEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrLogEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *LogEntry) ID() kernel.UUID { return e.id }

// ParcelID returns the parcel the dispatch concerned.
func (e *LogEntry) ParcelID() kernel.UUID { return e.parcelID }

// Channel returns the transport the dispatch used.
func (e *LogEntry) Channel() Channel { return e.channel }

// Recipient returns the address or number the dispatch targeted.
func (e *LogEntry) Recipient() string { return e.recipient }

// TemplateKey returns the template the content was rendered from.
func (e *LogEntry) TemplateKey() string { return e.templateKey }

// Status returns the dispatch outcome.
func (e *LogEntry) Status() DispatchStatus { return e.status }

// ProviderMessageID returns the provider-issued message id, if any.
func (e *LogEntry) ProviderMessageID() string { return e.providerMessageID }

// CreatedAt returns the time the attempt was logged.
func (e *LogEntry) CreatedAt() time.Time { return e.createdAt }
