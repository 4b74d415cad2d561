package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"travelcraft/internal/models/request_models"
	"travelcraft/internal/models/session_models"
	"travelcraft/pkg/utils"
)

const (
	NoticeMissingFields = "全ての項目を入力してください"
	NoticePlanFailed    = "旅プランの生成に失敗しました。サーバーが起動しているか確認してください。"
)

type PlanPhase string

// Terminal phases of an attempt; both hand control back to the idle form.
const (
	PhaseSucceeded PlanPhase = "succeeded"
	PhaseFailed    PlanPhase = "failed"
)

// PlanOutcome is the single result of one "generate plan" attempt.
// Applied is false when a later-issued attempt had already stored its plan.
type PlanOutcome struct {
	Phase   PlanPhase
	Plan    string
	Applied bool
	Err     error
}

func (o PlanOutcome) Succeeded() bool { return o.Phase == PhaseSucceeded }

type PlannerServiceInterface interface {
	GeneratePlan(ctx context.Context, sessionID string) PlanOutcome
}

type PlannerService struct {
	forms  FormServiceInterface
	client PlanClientInterface
	logger *zap.Logger
}

func NewPlannerService(forms FormServiceInterface, client PlanClientInterface, logger *zap.Logger) PlannerServiceInterface {
	return &PlannerService{
		forms:  forms,
		client: client,
		logger: logger.Named("planner"),
	}
}

// GeneratePlan runs validating -> requesting -> succeeded|failed for the session.
// A failure never touches the stored plan.
func (p *PlannerService) GeneratePlan(ctx context.Context, sessionID string) PlanOutcome {
	var (
		planReq request_models.PlanRequest
		seq     uint64
		valid   bool
	)

	_, err := p.forms.Update(ctx, sessionID, func(s *session_models.Session) {
		valid = false
		if !s.Form.Complete() {
			s.Notice = NoticeMissingFields
			return
		}
		valid = true
		s.IssuedSeq++
		seq = s.IssuedSeq
		planReq = request_models.NewPlanRequest(s.Form)
	})
	if err != nil {
		return PlanOutcome{Phase: PhaseFailed, Err: err}
	}
	if !valid {
		return PlanOutcome{Phase: PhaseFailed, Err: utils.ErrMissingFields}
	}

	plan, err := p.client.GeneratePlan(ctx, planReq)
	if err != nil {
		p.logger.Error("plan generation failed",
			zap.String("session_id", sessionID),
			zap.Uint64("seq", seq),
			zap.Error(err))
		if notifyErr := p.forms.Notify(ctx, sessionID, NoticePlanFailed); notifyErr != nil {
			p.logger.Warn("could not store failure notice", zap.Error(notifyErr))
		}
		return PlanOutcome{Phase: PhaseFailed, Err: err}
	}

	p.logger.Info("plan received",
		zap.String("session_id", sessionID),
		zap.Uint64("seq", seq),
		zap.String("plan", plan))

	applied := false
	_, err = p.forms.Update(ctx, sessionID, func(s *session_models.Session) {
		applied = false
		if seq > s.AppliedSeq {
			s.Plan = plan
			s.AppliedSeq = seq
			applied = true
		}
	})
	if err != nil {
		return PlanOutcome{Phase: PhaseFailed, Plan: plan, Err: err}
	}
	if !applied {
		p.logger.Info("dropping plan superseded by a later request",
			zap.String("session_id", sessionID),
			zap.Uint64("seq", seq))
	}

	return PlanOutcome{Phase: PhaseSucceeded, Plan: plan, Applied: applied}
}

// SplitPlanLines turns plan text into display lines. Only "\n" separates lines.
func SplitPlanLines(plan string) []string {
	if plan == "" {
		return nil
	}
	return strings.Split(plan, "\n")
}
