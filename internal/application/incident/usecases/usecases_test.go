package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/errors"
)

func TestRaiseIncidentUseCase_Execute(t *testing.T) {
	t.Run("raises and auto-assigns a technician", func(t *testing.T) {
		repo := &mockIncidentRepo{}
		techID := uint(11)
		resolver := &mockResolver{
			resolveFunc: func(ctx context.Context, inc *incident.Incident) (*ResolvedAssignment, error) {
				return &ResolvedAssignment{RuleID: 3, RuleName: "camera to bench 2", TechnicianID: &techID}, nil
			},
		}
		notifier := &mockNotifier{}
		uc := NewRaiseIncidentUseCase(repo, &mockNumberGen{}, resolver, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), RaiseIncidentCommand{
			Title:      "Gimbal vibration on takeoff",
			Category:   string(vo.CategoryCamera),
			Priority:   string(vo.PriorityHigh),
			CustomerID: 42,
		})

		require.NoError(t, err)
		assert.Equal(t, "UAV-2026-0001", result.Number)
		assert.Equal(t, vo.StatusIncidentRaised.String(), result.Status)
		require.NotNil(t, result.TechnicianID)
		assert.Equal(t, techID, *result.TechnicianID)
		assert.Equal(t, []uint{1}, notifier.raised)
		assert.Equal(t, []uint{techID}, notifier.assigned)
		require.Len(t, repo.activities, 2)
		assert.Equal(t, "incident_raised", repo.activities[0].Action())
		assert.Equal(t, "auto_assigned", repo.activities[1].Action())
	})

	t.Run("no rule matched leaves the incident unassigned", func(t *testing.T) {
		repo := &mockIncidentRepo{}
		notifier := &mockNotifier{}
		uc := NewRaiseIncidentUseCase(repo, &mockNumberGen{}, &mockResolver{}, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), RaiseIncidentCommand{
			Title:      "Battery swelling",
			Category:   string(vo.CategoryBattery),
			Priority:   string(vo.PriorityMedium),
			CustomerID: 42,
		})

		require.NoError(t, err)
		assert.Nil(t, result.TechnicianID)
		assert.Nil(t, result.GroupID)
		assert.Empty(t, notifier.assigned)
		require.Len(t, repo.activities, 1)
	})

	t.Run("defaults to the standard SLA when blank", func(t *testing.T) {
		var saved *incident.Incident
		repo := &mockIncidentRepo{
			saveFunc: func(ctx context.Context, inc *incident.Incident) error {
				saved = inc
				return inc.SetID(1)
			},
		}
		uc := NewRaiseIncidentUseCase(repo, &mockNumberGen{}, &mockResolver{}, mockTransactor{}, &mockNotifier{}, testLogger())

		_, err := uc.Execute(context.Background(), RaiseIncidentCommand{
			Title:      "Annual service",
			Category:   string(vo.CategoryRoutineMaintenance),
			Priority:   string(vo.PriorityLow),
			CustomerID: 42,
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, vo.SLAStandard, saved.SLACategory())
	})

	t.Run("validation failures", func(t *testing.T) {
		uc := NewRaiseIncidentUseCase(&mockIncidentRepo{}, &mockNumberGen{}, &mockResolver{}, mockTransactor{}, &mockNotifier{}, testLogger())

		tests := []struct {
			name string
			cmd  RaiseIncidentCommand
		}{
			{"missing title", RaiseIncidentCommand{Category: "OTHER", Priority: "LOW", CustomerID: 1}},
			{"missing customer", RaiseIncidentCommand{Title: "x", Category: "OTHER", Priority: "LOW"}},
			{"bad category", RaiseIncidentCommand{Title: "x", Category: "ENGINE", Priority: "LOW", CustomerID: 1}},
			{"bad priority", RaiseIncidentCommand{Title: "x", Category: "OTHER", Priority: "WHENEVER", CustomerID: 1}},
			{"bad sla", RaiseIncidentCommand{Title: "x", Category: "OTHER", Priority: "LOW", SLACategory: "INSTANT", CustomerID: 1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.cmd)
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			})
		}
	})
}

func TestAssignTechnicianUseCase_Execute(t *testing.T) {
	t.Run("first assignment starts diagnosis", func(t *testing.T) {
		inc, err := incident.NewIncident(incident.NewIncidentParams{
			Title:       "Compass error",
			Category:    vo.CategoryOther,
			Priority:    vo.PriorityMedium,
			SLACategory: vo.SLAStandard,
			CustomerID:  42,
		})
		require.NoError(t, err)
		require.NoError(t, inc.SetID(7))

		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		notifier := &mockNotifier{}
		uc := NewAssignTechnicianUseCase(repo, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), AssignTechnicianCommand{IncidentID: 7, TechnicianID: 11, ActorID: 1})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusDiagnosisWO.String(), result.Status)
		assert.Equal(t, []uint{11}, notifier.assigned)
		assert.NotNil(t, inc.TechnicianAssignedAt())
	})

	t.Run("incident not found", func(t *testing.T) {
		uc := NewAssignTechnicianUseCase(&mockIncidentRepo{}, mockTransactor{}, &mockNotifier{}, testLogger())
		_, err := uc.Execute(context.Background(), AssignTechnicianCommand{IncidentID: 99, TechnicianID: 11, ActorID: 1})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestCompleteDiagnosisUseCase_Execute(t *testing.T) {
	threshold := decimal.NewFromInt(1000)

	t.Run("under threshold and in warranty skips approval", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewCompleteDiagnosisUseCase(repo, &mockWorkOrderService{}, &mockPartsConsumer{}, mockTransactor{}, threshold, testLogger())

		result, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{
			IncidentID:    7,
			ActorID:       11,
			Notes:         "loose gimbal mount",
			WorkOrderType: string(incident.WorkOrderRepair),
			EstimatedCost: decimal.NewFromInt(400),
		})

		require.NoError(t, err)
		assert.False(t, result.RequiresApproval)
		assert.Equal(t, vo.StatusRepairMaintenance.String(), result.Status)
		assert.Equal(t, uint(10), result.WorkOrderID)
	})

	t.Run("estimate over threshold requires approval", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewCompleteDiagnosisUseCase(repo, &mockWorkOrderService{}, &mockPartsConsumer{}, mockTransactor{}, threshold, testLogger())

		result, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{
			IncidentID:    7,
			ActorID:       11,
			WorkOrderType: string(incident.WorkOrderReplace),
			EstimatedCost: decimal.NewFromInt(2500),
		})

		require.NoError(t, err)
		assert.True(t, result.RequiresApproval)
		assert.Equal(t, vo.StatusWOApproval.String(), result.Status)
	})

	t.Run("out of warranty requires approval regardless of estimate", func(t *testing.T) {
		inc, err := incident.NewIncident(incident.NewIncidentParams{
			Title:       "Cracked arm",
			Category:    vo.CategoryCrashRepair,
			Priority:    vo.PriorityHigh,
			SLACategory: vo.SLAStandard,
			CustomerID:  42,
		})
		require.NoError(t, err)
		require.NoError(t, inc.SetID(8))
		require.NoError(t, inc.AssignTechnician(11, nil))
		require.NoError(t, inc.StartDiagnosis())

		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewCompleteDiagnosisUseCase(repo, &mockWorkOrderService{}, &mockPartsConsumer{}, mockTransactor{}, threshold, testLogger())

		result, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{
			IncidentID:    8,
			ActorID:       11,
			WorkOrderType: string(incident.WorkOrderRepair),
			EstimatedCost: decimal.NewFromInt(50),
		})

		require.NoError(t, err)
		assert.True(t, result.RequiresApproval)
	})

	t.Run("consumes diagnostic parts and returns their cost", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		parts := &mockPartsConsumer{
			consumeFunc: func(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error) {
				assert.Equal(t, uint(7), incidentID)
				require.Len(t, lines, 1)
				return decimal.NewFromFloat(89.90), nil
			},
		}
		uc := NewCompleteDiagnosisUseCase(repo, &mockWorkOrderService{}, parts, mockTransactor{}, threshold, testLogger())

		result, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{
			IncidentID:    7,
			ActorID:       11,
			WorkOrderType: string(incident.WorkOrderRepair),
			EstimatedCost: decimal.NewFromInt(400),
			Parts:         []PartLine{{ItemID: 3, Quantity: 1}},
		})

		require.NoError(t, err)
		assert.True(t, result.PartsCost.Equal(decimal.NewFromFloat(89.90)))
	})

	t.Run("insufficient stock aborts the diagnosis", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		parts := &mockPartsConsumer{
			consumeFunc: func(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error) {
				return decimal.Zero, errors.NewConflictError("insufficient stock")
			},
		}
		uc := NewCompleteDiagnosisUseCase(repo, &mockWorkOrderService{}, parts, mockTransactor{}, threshold, testLogger())

		_, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{
			IncidentID:    7,
			ActorID:       11,
			WorkOrderType: string(incident.WorkOrderRepair),
			EstimatedCost: decimal.NewFromInt(400),
			Parts:         []PartLine{{ItemID: 3, Quantity: 99}},
		})

		require.Error(t, err)
	})

	t.Run("invalid work order type", func(t *testing.T) {
		uc := NewCompleteDiagnosisUseCase(&mockIncidentRepo{}, &mockWorkOrderService{}, &mockPartsConsumer{}, mockTransactor{}, threshold, testLogger())
		_, err := uc.Execute(context.Background(), CompleteDiagnosisCommand{IncidentID: 7, WorkOrderType: "DEMOLISH"})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestCompleteRepairUseCase_Execute(t *testing.T) {
	repairIncident := func(t *testing.T) *incident.Incident {
		t.Helper()
		inc := incidentInDiagnosis(11)
		require.NoError(t, inc.CompleteDiagnosis("worn dampers", incident.WorkOrderRepair, decimal.NewFromInt(400), false))
		return inc
	}

	t.Run("adds parts cost to the actual cost", func(t *testing.T) {
		inc := repairIncident(t)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		parts := &mockPartsConsumer{
			consumeFunc: func(ctx context.Context, incidentID uint, lines []PartLine, actorID *uint) (decimal.Decimal, error) {
				return decimal.NewFromInt(150), nil
			},
		}
		uc := NewCompleteRepairUseCase(repo, parts, mockTransactor{}, testLogger())

		result, err := uc.Execute(context.Background(), CompleteRepairCommand{
			IncidentID: 7,
			ActorID:    11,
			Notes:      "replaced both dampers",
			LaborHours: decimal.NewFromFloat(2.5),
			ActualCost: decimal.NewFromInt(300),
			Parts:      []PartLine{{ItemID: 3, Quantity: 2}},
		})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusQualityCheck.String(), result.Status)
		assert.True(t, result.PartsCost.Equal(decimal.NewFromInt(150)))
		assert.True(t, inc.ActualCost().Equal(decimal.NewFromInt(450)))
		assert.NotNil(t, inc.RepairCompletedAt())
	})

	t.Run("repair out of order is rejected", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewCompleteRepairUseCase(repo, &mockPartsConsumer{}, mockTransactor{}, testLogger())

		_, err := uc.Execute(context.Background(), CompleteRepairCommand{
			IncidentID: 7,
			ActorID:    11,
			ActualCost: decimal.NewFromInt(300),
		})

		require.Error(t, err)
	})
}

func TestPassQualityCheckUseCase_Execute(t *testing.T) {
	qcIncident := func(t *testing.T) *incident.Incident {
		t.Helper()
		inc := incidentInDiagnosis(11)
		require.NoError(t, inc.CompleteDiagnosis("worn dampers", incident.WorkOrderRepair, decimal.NewFromInt(400), false))
		require.NoError(t, inc.CompleteRepair("replaced dampers", decimal.NewFromFloat(2.5), decimal.NewFromInt(450)))
		return inc
	}

	t.Run("closes and completes the work order without follow-up", func(t *testing.T) {
		inc := qcIncident(t)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		workOrders := &mockWorkOrderService{}
		notifier := &mockNotifier{}
		uc := NewPassQualityCheckUseCase(repo, workOrders, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), PassQualityCheckCommand{
			IncidentID:             7,
			ActorID:                12,
			QAVerified:             true,
			AirworthinessCertified: true,
		})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusClosed.String(), result.Status)
		assert.Equal(t, []uint{7}, workOrders.completed)
		assert.Equal(t, []uint{7}, notifier.closed)
	})

	t.Run("preventive follow-up keeps the incident open", func(t *testing.T) {
		inc := qcIncident(t)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		workOrders := &mockWorkOrderService{}
		notifier := &mockNotifier{}
		uc := NewPassQualityCheckUseCase(repo, workOrders, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), PassQualityCheckCommand{
			IncidentID:             7,
			ActorID:                12,
			QAVerified:             true,
			AirworthinessCertified: true,
			SchedulePreventive:     true,
		})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusPreventiveMaintenance.String(), result.Status)
		assert.Empty(t, workOrders.completed)
		assert.Empty(t, notifier.closed)
	})

	t.Run("both certifications are required", func(t *testing.T) {
		inc := qcIncident(t)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewPassQualityCheckUseCase(repo, &mockWorkOrderService{}, mockTransactor{}, &mockNotifier{}, testLogger())

		_, err := uc.Execute(context.Background(), PassQualityCheckCommand{
			IncidentID: 7,
			ActorID:    12,
			QAVerified: true,
		})

		require.Error(t, err)
	})
}

func TestCloseIncidentUseCase_Execute(t *testing.T) {
	t.Run("closes after preventive maintenance", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		require.NoError(t, inc.CompleteDiagnosis("worn dampers", incident.WorkOrderRepair, decimal.NewFromInt(400), false))
		require.NoError(t, inc.CompleteRepair("replaced dampers", decimal.NewFromFloat(2.5), decimal.NewFromInt(450)))
		require.NoError(t, inc.PassQualityCheck("all good", true, true, true))
		require.NoError(t, inc.MarkPreventiveScheduled())

		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		workOrders := &mockWorkOrderService{}
		notifier := &mockNotifier{}
		uc := NewCloseIncidentUseCase(repo, workOrders, mockTransactor{}, notifier, testLogger())

		result, err := uc.Execute(context.Background(), CloseIncidentCommand{IncidentID: 7, ActorID: 1})

		require.NoError(t, err)
		assert.Equal(t, vo.StatusClosed.String(), result.Status)
		assert.Equal(t, []uint{7}, workOrders.completed)
		assert.Equal(t, []uint{7}, notifier.closed)
	})

	t.Run("cannot close mid-workflow", func(t *testing.T) {
		inc := incidentInDiagnosis(11)
		repo := &mockIncidentRepo{
			findByIDFunc: func(ctx context.Context, id uint) (*incident.Incident, error) { return inc, nil },
		}
		uc := NewCloseIncidentUseCase(repo, &mockWorkOrderService{}, mockTransactor{}, &mockNotifier{}, testLogger())

		_, err := uc.Execute(context.Background(), CloseIncidentCommand{IncidentID: 7, ActorID: 1})
		require.Error(t, err)
	})
}
