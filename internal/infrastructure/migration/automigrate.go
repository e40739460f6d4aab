package migration

import (
	"skywrench/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every persistence model for schema migration.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.IncidentModel{},
		&models.IncidentActivityModel{},
		&models.WorkOrderModel{},
		&models.WorkOrderApprovalModel{},
		&models.InventoryItemModel{},
		&models.StockTransactionModel{},
		&models.AssignmentRuleModel{},
		&models.AssignmentGroupModel{},
		&models.MaintenanceScheduleModel{},
		&models.ProductModel{},
		&models.CompanyModel{},
		&models.ProductCategoryModel{},
		&models.ArticleModel{},
		&models.InboundRuleModel{},
		&models.ProcessedEmailModel{},
		&models.SyncRunModel{},
		&models.EmailLogModel{},
	}
}
