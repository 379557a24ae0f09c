package cmd

import (
	"log/slog"
	"strconv"

	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/adapters/out/postgres/customerdir"
	"parcelflow/internal/adapters/out/postgres/notificationrepo"
	"parcelflow/internal/adapters/out/redispub"
	"parcelflow/internal/adapters/out/smsgateway"
	"parcelflow/internal/adapters/out/smtpmail"
	"parcelflow/internal/core/application/notify"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *redispub.RedisEventPublisher
	notifier   *notify.Notifier
	config     Config
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	publisher := redispub.NewRedisEventPublisher(redisClient)

	emailSender, err := smtpmail.NewSMTPEmailSender(smtpmail.Config{
		Host:     configs.SMTPHost,
		Port:     intOrZero(configs.SMTPPort),
		Username: configs.SMTPUsername,
		Password: configs.SMTPPassword,
		From:     configs.SMTPFrom,
	}, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	smsSender := smsgateway.NewWebhookSMSSender(configs.SMSWebhookURL, configs.SMSWebhookToken, logger)

	notifier := notify.NewNotifier(
		customerdir.NewGormCustomerDirectory(gormDB),
		emailSender,
		smsSender,
		notificationrepo.NewGormNotificationLogRepository(gormDB),
		notificationrepo.NewGormNotificationRepository(gormDB),
		publisher,
		logger,
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		notifier:   notifier,
		config:     configs,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Notifier() *notify.Notifier {
	return c.notifier
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBookingCommandHandler(f, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	var f commands.ParcelMutationUoWFactory = FuncParcelMutationUoWFactory(func() commands.ParcelMutationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeParcelStatusCommandHandler(f, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignParcelAgentCommandHandler() commands.AssignParcelAgentCommandHandler {
	var f commands.ParcelMutationUoWFactory = FuncParcelMutationUoWFactory(func() commands.ParcelMutationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignParcelAgentCommandHandler(f, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRecordTrackingPointCommandHandler() commands.RecordTrackingPointCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordTrackingPointCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSoftDeleteParcelCommandHandler() commands.SoftDeleteParcelCommandHandler {
	var f commands.ParcelMutationUoWFactory = FuncParcelMutationUoWFactory(func() commands.ParcelMutationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSoftDeleteParcelCommandHandler(f)
}

func (c *CompositionRoot) CreatePruneTrackingPointsCommandHandler() commands.PruneTrackingPointsCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPruneTrackingPointsCommandHandler(f)
}

func (c *CompositionRoot) CreateListCustomerParcelsQueryHandler() queries.ListCustomerParcelsQueryHandler {
	return queries.NewListCustomerParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingFeedQueryHandler() queries.GetTrackingFeedQueryHandler {
	return queries.NewGetTrackingFeedQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelByTrackingCodeQueryHandler() queries.GetParcelByTrackingCodeQueryHandler {
	return queries.NewGetParcelByTrackingCodeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserNotificationsQueryHandler() queries.ListUserNotificationsQueryHandler {
	return queries.NewListUserNotificationsQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled jobs. Returns nil when tracking
// retention is not configured, so callers can skip starting the scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	retentionDays := intOrZero(c.config.TrackingRetentionDays)
	if retentionDays <= 0 {
		return nil
	}
	return jobs.NewJobManager(c.CreatePruneTrackingPointsCommandHandler(), retentionDays, c.logger)
}

func intOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncParcelMutationUoWFactory func() commands.ParcelMutationUoW

func (f FuncParcelMutationUoWFactory) Create() commands.ParcelMutationUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
