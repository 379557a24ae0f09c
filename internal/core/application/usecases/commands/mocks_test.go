package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/actor"
	"parcelflow/internal/core/domain/model/audit"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/notification"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/tracking"
	"parcelflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockParcelRepository) UpdateIfStatus(
	ctx context.Context, aggregate *parcel.Parcel, expected parcel.Status,
) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}
func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}
func (m *MockParcelRepository) GetByTrackingCode(
	ctx context.Context, code parcel.TrackingCode,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Add(ctx context.Context, record *parcel.StatusHistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, point *tracking.Point) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}
func (m *MockTrackingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Add(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUoW satisfies every narrow unit of work interface the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}
func (m *MockUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}
func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}
func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditLogRepository)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockParcelMutationUoWFactory struct{ mock.Mock }

func (m *MockParcelMutationUoWFactory) Create() commands.ParcelMutationUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelMutationUoW)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic, event string, payload any) error {
	args := m.Called(ctx, topic, event, payload)
	return args.Error(0)
}

type MockParcelNotifier struct{ mock.Mock }

func (m *MockParcelNotifier) NotifyParcelEvent(
	ctx context.Context, p *parcel.Parcel, templateKey string, tctx notify.Context,
) {
	m.Called(ctx, p, templateKey, tctx)
}
func (m *MockParcelNotifier) CreateUserNotification(
	ctx context.Context,
	userID kernel.UUID,
	role actor.Role,
	kind, title, body string,
	data map[string]any,
) (*notification.Notification, error) {
	args := m.Called(ctx, userID, role, kind, title, body, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
