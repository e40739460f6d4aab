package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	assignmentuc "skywrench/internal/application/assignment/usecases"
	incidentuc "skywrench/internal/application/incident/usecases"
	integrationuc "skywrench/internal/application/integration/usecases"
	inventoryuc "skywrench/internal/application/inventory/usecases"
	knowledgeuc "skywrench/internal/application/knowledge/usecases"
	mailroomuc "skywrench/internal/application/mailroom/usecases"
	maintenanceuc "skywrench/internal/application/maintenance/usecases"
	productuc "skywrench/internal/application/product/usecases"
	useruc "skywrench/internal/application/user/usecases"
	workorderuc "skywrench/internal/application/workorder/usecases"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/infrastructure/auth"
	"skywrench/internal/infrastructure/config"
	"skywrench/internal/infrastructure/email"
	infraIntegration "skywrench/internal/infrastructure/integration"
	infraMailroom "skywrench/internal/infrastructure/mailroom"
	"skywrench/internal/infrastructure/markdown"
	"skywrench/internal/infrastructure/numbering"
	"skywrench/internal/infrastructure/permission"
	"skywrench/internal/infrastructure/ratelimit"
	"skywrench/internal/infrastructure/repository"
	"skywrench/internal/infrastructure/scheduler"
	"skywrench/internal/interfaces/http/handlers"
	"skywrench/internal/interfaces/http/middleware"
	sharedConfig "skywrench/internal/shared/config"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/logger"
)

const (
	maintenanceReminderInterval = time.Hour
	slaMonitorInterval          = 10 * time.Minute

	apiRequestsPerMinute = 120
	apiRequestsPerHour   = 3000
)

// Container wires the repositories, use cases, handlers and background
// services together and owns their shutdown order.
type Container struct {
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface

	redisClient *redis.Client
	enforcer    *permission.Enforcer

	schedulerManager *scheduler.SchedulerManager
	poller           *infraMailroom.Poller
}

// NewContainer builds the full object graph on top of an open database
// handle. Background services are constructed but not started; call
// StartBackground once the process is ready to serve.
func NewContainer(cfg *config.Config, gdb *gorm.DB, log logger.Interface) (*Container, error) {
	c := &Container{cfg: cfg, log: log}

	c.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	txManager := db.NewTransactionManager(gdb)

	// Repositories
	userRepo := repository.NewUserRepository(gdb)
	incidentRepo := repository.NewIncidentRepository(gdb)
	workOrderRepo := repository.NewWorkOrderRepository(gdb)
	inventoryRepo := repository.NewInventoryRepository(gdb)
	ruleRepo := repository.NewAssignmentRuleRepository(gdb)
	groupRepo := repository.NewAssignmentGroupRepository(gdb)
	maintenanceRepo := repository.NewMaintenanceRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	companyRepo := repository.NewCompanyRepository(gdb)
	productCategoryRepo := repository.NewProductCategoryRepository(gdb)
	knowledgeRepo := repository.NewKnowledgeRepository(gdb)
	inboundRuleRepo := repository.NewInboundRuleRepository(gdb)
	processedRepo := repository.NewProcessedEmailRepository(gdb)
	syncRunRepo := repository.NewSyncRunRepository(gdb)
	emailLogRepo := repository.NewEmailLogRepository(gdb)

	// Infrastructure services
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	incidentNumbers := numbering.NewIncidentNumberGenerator(gdb)
	workOrderNumbers := numbering.NewWorkOrderNumberGenerator(gdb)
	renderer := markdown.NewRenderer()

	sender := email.NewSMTPSender(cfg.Email)
	notifier := email.NewNotifier(sender, userRepo, emailLogRepo, cfg.Email.FromName, log)

	slaThresholds := slaThresholdsFromConfig(cfg.SLA)
	approvalThreshold := approvalThresholdFromConfig(cfg.Approval)

	// Cross-context services
	userDirectory := useruc.NewDirectory(userRepo, hasher, log)
	resolver := assignmentuc.NewResolver(ruleRepo, groupRepo, userDirectory, log)
	workOrderService := workorderuc.NewService(workOrderRepo, workOrderNumbers, log)
	maintenanceScheduler := maintenanceuc.NewScheduler(maintenanceRepo, log)
	consumePartsUC := inventoryuc.NewConsumePartsUseCase(inventoryRepo, txManager, log)

	// Incident workflow use cases
	raiseIncidentUC := incidentuc.NewRaiseIncidentUseCase(incidentRepo, incidentNumbers, resolver, txManager, notifier, log)
	getIncidentUC := incidentuc.NewGetIncidentUseCase(incidentRepo, slaThresholds, log)
	listIncidentsUC := incidentuc.NewListIncidentsUseCase(incidentRepo, slaThresholds, log)
	assignTechnicianUC := incidentuc.NewAssignTechnicianUseCase(incidentRepo, txManager, notifier, log)
	completeDiagnosisUC := incidentuc.NewCompleteDiagnosisUseCase(incidentRepo, workOrderService, consumePartsUC, txManager, approvalThreshold, log)
	approveWorkOrderUC := incidentuc.NewApproveWorkOrderUseCase(incidentRepo, workOrderService, txManager, log)
	rejectWorkOrderUC := incidentuc.NewRejectWorkOrderUseCase(incidentRepo, workOrderService, txManager, log)
	completeRepairUC := incidentuc.NewCompleteRepairUseCase(incidentRepo, consumePartsUC, txManager, log)
	passQualityCheckUC := incidentuc.NewPassQualityCheckUseCase(incidentRepo, workOrderService, txManager, notifier, log)
	schedulePreventiveUC := incidentuc.NewSchedulePreventiveUseCase(incidentRepo, maintenanceScheduler, txManager, log)
	closeIncidentUC := incidentuc.NewCloseIncidentUseCase(incidentRepo, workOrderService, txManager, notifier, log)
	listActivitiesUC := incidentuc.NewListActivitiesUseCase(incidentRepo, log)

	// Supporting context use cases
	getWorkOrderUC := workorderuc.NewGetWorkOrderUseCase(workOrderRepo, log)
	listWorkOrdersUC := workorderuc.NewListWorkOrdersUseCase(workOrderRepo, log)

	createItemUC := inventoryuc.NewCreateItemUseCase(inventoryRepo, log)
	updateItemUC := inventoryuc.NewUpdateItemUseCase(inventoryRepo, log)
	getItemUC := inventoryuc.NewGetItemUseCase(inventoryRepo, log)
	listItemsUC := inventoryuc.NewListItemsUseCase(inventoryRepo, log)
	restockItemUC := inventoryuc.NewRestockItemUseCase(inventoryRepo, txManager, log)
	adjustStockUC := inventoryuc.NewAdjustStockUseCase(inventoryRepo, txManager, log)
	listTransactionsUC := inventoryuc.NewListTransactionsUseCase(inventoryRepo, log)

	createRuleUC := assignmentuc.NewCreateRuleUseCase(ruleRepo, log)
	updateRuleUC := assignmentuc.NewUpdateRuleUseCase(ruleRepo, log)
	deleteRuleUC := assignmentuc.NewDeleteRuleUseCase(ruleRepo, log)
	listRulesUC := assignmentuc.NewListRulesUseCase(ruleRepo, log)
	createGroupUC := assignmentuc.NewCreateGroupUseCase(groupRepo, log)
	updateGroupUC := assignmentuc.NewUpdateGroupUseCase(groupRepo, log)
	listGroupsUC := assignmentuc.NewListGroupsUseCase(groupRepo, log)

	createScheduleUC := maintenanceuc.NewCreateScheduleUseCase(maintenanceRepo, log)
	updateScheduleUC := maintenanceuc.NewUpdateScheduleUseCase(maintenanceRepo, log)
	recordFlightHoursUC := maintenanceuc.NewRecordFlightHoursUseCase(maintenanceRepo, log)
	markPerformedUC := maintenanceuc.NewMarkPerformedUseCase(maintenanceRepo, log)
	listSchedulesUC := maintenanceuc.NewListSchedulesUseCase(maintenanceRepo, log)
	listDueUC := maintenanceuc.NewListDueSchedulesUseCase(maintenanceRepo, log)

	createProductUC := productuc.NewCreateProductUseCase(productRepo, companyRepo, log)
	updateProductUC := productuc.NewUpdateProductUseCase(productRepo, companyRepo, log)
	deleteProductUC := productuc.NewDeleteProductUseCase(productRepo, log)
	recordProductServiceUC := productuc.NewRecordProductServiceUseCase(productRepo, log)
	getProductUC := productuc.NewGetProductUseCase(productRepo)
	listProductsUC := productuc.NewListProductsUseCase(productRepo)
	companiesUC := productuc.NewManageCompaniesUseCase(companyRepo, log)
	categoriesUC := productuc.NewManageCategoriesUseCase(productCategoryRepo, log)

	createArticleUC := knowledgeuc.NewCreateArticleUseCase(knowledgeRepo, log)
	updateArticleUC := knowledgeuc.NewUpdateArticleUseCase(knowledgeRepo, log)
	deleteArticleUC := knowledgeuc.NewDeleteArticleUseCase(knowledgeRepo, log)
	getArticleUC := knowledgeuc.NewGetArticleUseCase(knowledgeRepo, renderer, log)
	listArticlesUC := knowledgeuc.NewListArticlesUseCase(knowledgeRepo, log)

	createInboundRuleUC := mailroomuc.NewCreateInboundRuleUseCase(inboundRuleRepo, log)
	setRuleActiveUC := mailroomuc.NewSetRuleActiveUseCase(inboundRuleRepo, log)
	deleteInboundRuleUC := mailroomuc.NewDeleteInboundRuleUseCase(inboundRuleRepo, log)
	listInboundRulesUC := mailroomuc.NewListInboundRulesUseCase(inboundRuleRepo, log)
	listProcessedUC := mailroomuc.NewListProcessedEmailsUseCase(processedRepo, log)
	processInboundUC := mailroomuc.NewProcessInboundUseCase(inboundRuleRepo, processedRepo, raiseIncidentUC, assignTechnicianUC, userDirectory, log)

	authenticateUC := useruc.NewAuthenticateUseCase(userRepo, hasher, jwtService, log)
	createUserUC := useruc.NewCreateUserUseCase(userRepo, hasher, log)
	updateUserUC := useruc.NewUpdateUserUseCase(userRepo, log)
	changePasswordUC := useruc.NewChangePasswordUseCase(userRepo, hasher, log)
	getUserUC := useruc.NewGetUserUseCase(userRepo, log)
	listUsersUC := useruc.NewListUsersUseCase(userRepo, log)

	// External connectors
	ldapConnector := infraIntegration.NewLDAPConnector(cfg.Integrations.LDAP, userRepo, hasher, log)
	jiraConnector := infraIntegration.NewJiraConnector(cfg.Integrations.IssueTracker, incidentRepo, log)
	registry := integrationuc.NewRegistry(ldapConnector, jiraConnector)
	runSyncUC := integrationuc.NewRunSyncUseCase(registry, syncRunRepo, log)
	testConnectionUC := integrationuc.NewTestConnectionUseCase(registry, log)
	listSyncRunsUC := integrationuc.NewListSyncRunsUseCase(syncRunRepo, log)

	// Authorization policies
	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, err
	}
	if err := permission.SeedDefaultPolicies(enforcer, log); err != nil {
		return nil, err
	}
	c.enforcer = enforcer

	// Middleware
	authMW := middleware.NewAuthMiddleware(jwtService, log)
	permMW := middleware.NewPermissionMiddleware(enforcer, log)
	rateLimitMW := middleware.NewRateLimitMiddleware(
		ratelimit.NewRedisRateLimiter(c.redisClient),
		ratelimit.RateLimitConfig{RequestsPerMinute: apiRequestsPerMinute, RequestsPerHour: apiRequestsPerHour},
		log,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authenticateUC, getUserUC, changePasswordUC)
	userHandler := handlers.NewUserHandler(createUserUC, updateUserUC, getUserUC, listUsersUC)
	incidentHandler := handlers.NewIncidentHandler(
		raiseIncidentUC, getIncidentUC, listIncidentsUC, assignTechnicianUC,
		completeDiagnosisUC, approveWorkOrderUC, rejectWorkOrderUC, completeRepairUC,
		passQualityCheckUC, schedulePreventiveUC, closeIncidentUC, listActivitiesUC,
		consumePartsUC,
	)
	workOrderHandler := handlers.NewWorkOrderHandler(getWorkOrderUC, listWorkOrdersUC)
	inventoryHandler := handlers.NewInventoryHandler(createItemUC, updateItemUC, getItemUC, listItemsUC, restockItemUC, adjustStockUC, listTransactionsUC)
	assignmentHandler := handlers.NewAssignmentHandler(createRuleUC, updateRuleUC, deleteRuleUC, listRulesUC, createGroupUC, updateGroupUC, listGroupsUC)
	maintenanceHandler := handlers.NewMaintenanceHandler(createScheduleUC, updateScheduleUC, recordFlightHoursUC, markPerformedUC, listSchedulesUC, listDueUC)
	productHandler := handlers.NewProductHandler(
		createProductUC, updateProductUC, deleteProductUC, recordProductServiceUC,
		getProductUC, listProductsUC, companiesUC, categoriesUC,
	)
	knowledgeHandler := handlers.NewKnowledgeHandler(createArticleUC, updateArticleUC, deleteArticleUC, getArticleUC, listArticlesUC)
	mailroomHandler := handlers.NewMailroomHandler(createInboundRuleUC, setRuleActiveUC, deleteInboundRuleUC, listInboundRulesUC, listProcessedUC)
	integrationHandler := handlers.NewIntegrationHandler(registry, runSyncUC, testConnectionUC, listSyncRunsUC)

	c.engine = buildRouter(cfg, routerDeps{
		authMW:             authMW,
		permMW:             permMW,
		rateLimitMW:        rateLimitMW,
		authHandler:        authHandler,
		userHandler:        userHandler,
		incidentHandler:    incidentHandler,
		workOrderHandler:   workOrderHandler,
		inventoryHandler:   inventoryHandler,
		assignmentHandler:  assignmentHandler,
		maintenanceHandler: maintenanceHandler,
		productHandler:     productHandler,
		knowledgeHandler:   knowledgeHandler,
		mailroomHandler:    mailroomHandler,
		integrationHandler: integrationHandler,
	})

	// Background services
	schedulerManager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, err
	}
	reminderJob := scheduler.NewMaintenanceReminderJob(maintenanceRepo, notifier, log)
	if err := schedulerManager.RegisterMaintenanceReminderJob(reminderJob, maintenanceReminderInterval); err != nil {
		return nil, err
	}
	slaJob := scheduler.NewSLAMonitorJob(incidentRepo, notifier, slaThresholds, log)
	if err := schedulerManager.RegisterSLAMonitorJob(slaJob, slaMonitorInterval); err != nil {
		return nil, err
	}
	c.schedulerManager = schedulerManager

	if cfg.Mailroom.Enabled {
		imapClient := infraMailroom.NewIMAPClient(cfg.Mailroom, log)
		interval := time.Duration(cfg.Mailroom.PollIntervalSec) * time.Second
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		c.poller = infraMailroom.NewPoller(imapClient, processInboundUC, interval, log)
	}

	return c, nil
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// StartBackground starts the scheduler and, when enabled, the mailroom
// poller.
func (c *Container) StartBackground() {
	c.schedulerManager.Start()
	if c.poller != nil {
		c.poller.Start()
	}
}

// Shutdown stops background services and closes shared clients. The HTTP
// server is shut down by the caller before this runs.
func (c *Container) Shutdown(ctx context.Context) {
	if c.poller != nil {
		timeout := 10 * time.Second
		if dl, ok := ctx.Deadline(); ok {
			timeout = time.Until(dl)
		}
		c.poller.Stop(timeout)
	}

	if err := c.schedulerManager.Stop(); err != nil {
		c.log.Errorw("failed to stop scheduler", "error", err)
	}

	if err := c.redisClient.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
}

func slaThresholdsFromConfig(cfg sharedConfig.SLAConfig) vo.SLAThresholds {
	th := vo.DefaultSLAThresholds()
	if cfg.WarningRemainingHours > 0 {
		th.WarningRemaining = time.Duration(cfg.WarningRemainingHours) * time.Hour
	}
	if cfg.CriticalRemainingHours > 0 {
		th.CriticalRemaining = time.Duration(cfg.CriticalRemainingHours) * time.Hour
	}
	return th
}

func approvalThresholdFromConfig(cfg sharedConfig.ApprovalConfig) decimal.Decimal {
	if cfg.CostThreshold != "" {
		if v, err := decimal.NewFromString(cfg.CostThreshold); err == nil {
			return v
		}
	}
	return decimal.NewFromInt(1000)
}
