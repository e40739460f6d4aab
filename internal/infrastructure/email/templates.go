package email

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	TemplateIncidentRaised      = "incident_raised"
	TemplateTechnicianAssigned  = "technician_assigned"
	TemplateIncidentClosed      = "incident_closed"
	TemplateMaintenanceReminder = "maintenance_reminder"
	TemplateSLAWarning          = "sla_warning"
)

var defaultTemplates = map[string]string{
	TemplateIncidentRaised: `Hello {{.CustomerName}},

We have received your service request and opened incident {{.Number}}.

  Title:    {{.Title}}
  Category: {{.Category}}
  Priority: {{.Priority}}

Our team will review it shortly. You can quote the incident number in any
follow-up correspondence.

{{.Signature}}`,

	TemplateTechnicianAssigned: `Hello {{.TechnicianName}},

Incident {{.Number}} has been assigned to you.

  Title:    {{.Title}}
  Category: {{.Category}}
  Priority: {{.Priority}}
  UAV:      {{.UAVModel}} ({{.UAVSerial}})

Please start the diagnosis at your earliest convenience.

{{.Signature}}`,

	TemplateIncidentClosed: `Hello {{.CustomerName}},

Incident {{.Number}} ({{.Title}}) has been resolved and closed.

Thank you for choosing our service.

{{.Signature}}`,

	TemplateMaintenanceReminder: `Hello {{.CustomerName}},

Preventive maintenance is due for your UAV {{.UAVModel}} (serial
{{.UAVSerial}}). Please contact us to book a service slot.

{{.Signature}}`,

	TemplateSLAWarning: `Service level warning for incident {{.Number}} ({{.Title}}).

  Status:        {{.Status}}
  SLA category:  {{.SLACategory}}
  SLA health:    {{.SLAHealth}}

Please review the incident and take action.

{{.Signature}}`,
}

var templates = func() map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(defaultTemplates))
	for name, text := range defaultTemplates {
		parsed[name] = template.Must(template.New(name).Parse(text))
	}
	return parsed
}()

func renderTemplate(name string, data interface{}) (string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
