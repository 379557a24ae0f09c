// Package customerdir resolves customer contact details from the user store
// maintained by the external identity service. The engine never writes to
// this table; it only reads the notification-relevant columns.
package customerdir

import (
	"context"
	"database/sql"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerDirectory implements CustomerDirectory over the shared users table.
type GormCustomerDirectory struct {
	db *gorm.DB
}

// NewGormCustomerDirectory creates a read-only directory over the user store.
func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

// GetContact resolves the contact details of one customer.
func (d *GormCustomerDirectory) GetContact(
	ctx context.Context,
	customerID kernel.UUID,
) (ports.CustomerContact, error) {
	if err := customerID.Validate(); err != nil {
		return ports.CustomerContact{}, err
	}

	row := d.db.WithContext(ctx).Raw(`
		SELECT id, name, email, phone, language
		FROM users
		WHERE id = ?
	`, customerID.Bytes()).Row()

	var id uuid.UUID
	var name, email, phone, language sql.NullString
	if err := row.Scan(&id, &name, &email, &phone, &language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CustomerContact{}, errs.NewObjectNotFoundError("customerID", customerID.String())
		}
		return ports.CustomerContact{}, err
	}

	contactID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ports.CustomerContact{}, err
	}

	return ports.CustomerContact{
		ID:       contactID,
		Name:     name.String,
		Email:    email.String,
		Phone:    phone.String,
		Language: language.String,
	}, nil
}
