package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
)

// DispatchOutcome is what a notification transport reports back.
// Transports must not raise on ordinary delivery failure; they return a
// FAILED (or SKIPPED) outcome instead so the caller can log it.
type DispatchOutcome struct {
	Status notification.DispatchStatus
	// ProviderMessageID is the provider-issued message id, when available.
	ProviderMessageID string
}

// EmailSender sends rendered email content over the email transport.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) (DispatchOutcome, error)
}

// SMSSender sends rendered text over the SMS transport.
type SMSSender interface {
	Send(ctx context.Context, to, text string) (DispatchOutcome, error)
}

// CustomerContact is the notification-relevant slice of a customer record,
// resolved from the external identity store.
type CustomerContact struct {
	ID       kernel.UUID
	Name     string
	Email    string
	Phone    string
	Language string
}

// CustomerDirectory resolves customer contact details for notification
// dispatch. Identity and user CRUD live outside this engine; the directory is
// a read-only view of them.
type CustomerDirectory interface {
	GetContact(ctx context.Context, customerID kernel.UUID) (CustomerContact, error)
}
