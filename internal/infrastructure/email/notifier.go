package email

import (
	"context"
	"fmt"

	"skywrench/internal/domain/incident"
	"skywrench/internal/domain/maintenance"
	"skywrench/internal/domain/user"
	"skywrench/internal/shared/goroutine"
	"skywrench/internal/shared/logger"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(to, subject, body string) error
}

// UserLookup resolves recipient addresses.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

// DeliveryLog records the outcome of every send attempt.
type DeliveryLog interface {
	Record(ctx context.Context, recipient, subject, templateType, status, errorDetail string) error
}

// Notifier sends workflow emails asynchronously. Delivery failures are logged
// and written to the email log, never surfaced to the calling use case.
type Notifier struct {
	sender   Sender
	users    UserLookup
	delivery DeliveryLog
	fromName string
	logger   logger.Interface
}

func NewNotifier(sender Sender, users UserLookup, delivery DeliveryLog, fromName string, lg logger.Interface) *Notifier {
	return &Notifier{
		sender:   sender,
		users:    users,
		delivery: delivery,
		fromName: fromName,
		logger:   lg,
	}
}

func (n *Notifier) NotifyIncidentRaised(inc *incident.Incident) {
	number := inc.Number()
	data := map[string]string{
		"Number":    number,
		"Title":     inc.Title(),
		"Category":  inc.Category().String(),
		"Priority":  inc.Priority().String(),
		"Signature": n.signature(),
	}
	subject := fmt.Sprintf("Service request received: %s", number)
	n.sendToUser(inc.CustomerID(), "CustomerName", subject, TemplateIncidentRaised, data)
}

func (n *Notifier) NotifyTechnicianAssigned(inc *incident.Incident, technicianID uint) {
	number := inc.Number()
	data := map[string]string{
		"Number":    number,
		"Title":     inc.Title(),
		"Category":  inc.Category().String(),
		"Priority":  inc.Priority().String(),
		"UAVModel":  inc.UAVModel(),
		"UAVSerial": inc.UAVSerial(),
		"Signature": n.signature(),
	}
	subject := fmt.Sprintf("Incident assigned to you: %s", number)
	n.sendToUser(technicianID, "TechnicianName", subject, TemplateTechnicianAssigned, data)
}

func (n *Notifier) NotifyIncidentClosed(inc *incident.Incident) {
	number := inc.Number()
	data := map[string]string{
		"Number":    number,
		"Title":     inc.Title(),
		"Signature": n.signature(),
	}
	subject := fmt.Sprintf("Incident resolved: %s", number)
	n.sendToUser(inc.CustomerID(), "CustomerName", subject, TemplateIncidentClosed, data)
}

func (n *Notifier) NotifyMaintenanceDue(s *maintenance.Schedule) {
	data := map[string]string{
		"UAVModel":  s.UAVModel(),
		"UAVSerial": s.UAVSerial(),
		"Signature": n.signature(),
	}
	subject := fmt.Sprintf("Maintenance due: %s %s", s.UAVModel(), s.UAVSerial())
	n.sendToUser(s.CustomerID(), "CustomerName", subject, TemplateMaintenanceReminder, data)
}

// NotifySLAWarning alerts the assigned technician, falling back to silence
// when the incident is unassigned.
func (n *Notifier) NotifySLAWarning(inc *incident.Incident, health string) {
	techID := inc.TechnicianID()
	if techID == nil {
		n.logger.Warnw("sla warning for unassigned incident, no recipient",
			"incident_number", inc.Number(),
			"sla_health", health,
		)
		return
	}

	data := map[string]string{
		"Number":      inc.Number(),
		"Title":       inc.Title(),
		"Status":      inc.Status().String(),
		"SLACategory": inc.SLACategory().String(),
		"SLAHealth":   health,
		"Signature":   n.signature(),
	}
	subject := fmt.Sprintf("SLA warning: %s", inc.Number())
	n.sendToUser(*techID, "TechnicianName", subject, TemplateSLAWarning, data)
}

func (n *Notifier) sendToUser(userID uint, nameKey, subject, templateType string, data map[string]string) {
	goroutine.SafeGo(n.logger, "email-"+templateType, func() {
		ctx := context.Background()

		u, err := n.users.FindByID(ctx, userID)
		if err != nil {
			n.logger.Errorw("failed to resolve email recipient",
				"user_id", userID,
				"template", templateType,
				"error", err,
			)
			return
		}

		data[nameKey] = u.FullName()
		n.deliver(ctx, u.Email(), subject, templateType, data)
	})
}

func (n *Notifier) deliver(ctx context.Context, to, subject, templateType string, data map[string]string) {
	body, err := renderTemplate(templateType, data)
	if err != nil {
		n.logger.Errorw("failed to render email", "template", templateType, "error", err)
		return
	}

	status := EmailStatusSent
	errDetail := ""
	if err := n.sender.Send(to, subject, body); err != nil {
		status = EmailStatusFailed
		errDetail = err.Error()
		n.logger.Errorw("failed to send email",
			"recipient", to,
			"template", templateType,
			"error", err,
		)
	} else {
		n.logger.Infow("email sent", "recipient", to, "template", templateType)
	}

	if err := n.delivery.Record(ctx, to, subject, templateType, status, errDetail); err != nil {
		n.logger.Errorw("failed to record email log", "recipient", to, "error", err)
	}
}

func (n *Notifier) signature() string {
	if n.fromName != "" {
		return n.fromName
	}
	return "UAV Service Team"
}

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)
