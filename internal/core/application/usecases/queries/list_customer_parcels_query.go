package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

var ErrListCustomerParcelsQueryIsNotConstructed = errors.New(
	"ListCustomerParcelsQuery must be created via NewListCustomerParcelsQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListCustomerParcelsQuery retrieves a customer's parcels, newest booking
// first, with optional status and booking-date filtering and skip/limit
// pagination. Customers may only list their own parcels; admins may list any
// customer's.
type ListCustomerParcelsQuery struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	actor        actor.Actor
	statusFilter parcel.Status
	dateFrom     *time.Time
	dateTo       *time.Time
	page         int
	pageSize     int

	guard guard.ConstructorGuard
}

// NewListCustomerParcelsQuery creates a customer parcel listing query.
// statusFilter may be empty to list all statuses; dateFrom and dateTo bound
// the booking time inclusively and are each optional; page is 1-based and a
// non-positive page size falls back to the default.
func NewListCustomerParcelsQuery(
	customerID kernel.UUID,
	requestedBy actor.Actor,
	statusFilter parcel.Status,
	dateFrom, dateTo *time.Time,
	page, pageSize int,
) (ListCustomerParcelsQuery, error) {
	listQuery := ListCustomerParcelsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customerID.Validate(),
		requestedBy.Validate(),
	); err != nil {
		return ListCustomerParcelsQuery{}, err
	}
	if statusFilter != parcel.StatusUnknown {
		if err := statusFilter.Validate(); err != nil {
			return ListCustomerParcelsQuery{}, err
		}
	}

	switch requestedBy.Role {
	case actor.RoleAdmin:
	case actor.RoleCustomer:
		if !customerID.IsEqual(requestedBy.ID) {
			return ListCustomerParcelsQuery{}, errs.NewAccessForbiddenError(
				"parcel not available for this user")
		}
	default:
		return ListCustomerParcelsQuery{}, errs.NewAccessForbiddenError(
			"parcel listing requires a customer or an administrator")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return ListCustomerParcelsQuery{}, errs.NewValueIsOutOfRangeError(
			"page size", pageSize, 1, maxPageSize)
	}

	if dateFrom != nil && dateTo != nil && dateFrom.After(*dateTo) {
		return ListCustomerParcelsQuery{}, errs.NewValueIsInvalidError("date range")
	}

	listQuery.customerID = customerID
	listQuery.actor = requestedBy
	listQuery.statusFilter = statusFilter
	listQuery.dateFrom = dateFrom
	listQuery.dateTo = dateTo
	listQuery.page = page
	listQuery.pageSize = pageSize
	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
func (q ListCustomerParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerParcelsQueryIsNotConstructed)
}

// CustomerID returns the customer whose parcels are listed.
func (q ListCustomerParcelsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// StatusFilter returns the status filter, or StatusUnknown when unfiltered.
func (q ListCustomerParcelsQuery) StatusFilter() parcel.Status {
	return q.statusFilter
}

// DateFrom returns the inclusive lower booking-time bound, or nil when unbounded.
func (q ListCustomerParcelsQuery) DateFrom() *time.Time {
	return q.dateFrom
}

// DateTo returns the inclusive upper booking-time bound, or nil when unbounded.
func (q ListCustomerParcelsQuery) DateTo() *time.Time {
	return q.dateTo
}

// Page returns the 1-based page number.
func (q ListCustomerParcelsQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q ListCustomerParcelsQuery) PageSize() int {
	return q.pageSize
}

// Offset returns the number of rows to skip.
func (q ListCustomerParcelsQuery) Offset() int {
	return (q.page - 1) * q.pageSize
}

// ListCustomerParcelsQueryResponse is one page of a customer's parcels.
type ListCustomerParcelsQueryResponse struct {
	Items    []ParcelSummaryResponse
	Total    int64
	Page     int
	PageSize int
}
