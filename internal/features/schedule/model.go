package schedule

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grant-crm/internal/features/report"
)

// ReportSchedule runs a template's report on a cron expression and drops the
// artifact into the configured export directory.
type ReportSchedule struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	TemplateID string             `json:"template_id" bson:"template_id"`
	Format     report.Format      `json:"format" bson:"format"`
	CronExpr   string             `json:"cron_expr" bson:"cron_expr"`
	Active     bool               `json:"active" bson:"active"`
	LastRunAt  *time.Time         `json:"last_run_at,omitempty" bson:"last_run_at,omitempty"`
	NextRunAt  *time.Time         `json:"next_run_at,omitempty" bson:"next_run_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
