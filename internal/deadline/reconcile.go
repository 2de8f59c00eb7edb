package deadline

import (
	"context"
	"fmt"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
)

// Report summarises one reconcile pass.
type Report struct {
	Scanned   int `json:"scanned"`
	Linked    int `json:"linked"`
	Recreated int `json:"recreated"`
	Repaired  int `json:"repaired"`
	Failed    int `json:"failed"`
}

type outcome int

const (
	outcomeClean outcome = iota
	outcomeLinked
	outcomeRecreated
	outcomeRepaired
)

// Reconcile restores the mirror invariant for every deadline: unlinked
// deadlines get a mirror, dangling links are recreated and drifted mirrors
// are overwritten. Failures on one deadline are counted and the pass moves
// on; only a failure to list deadlines or a cancelled ctx aborts it.
func (s *Synchronizer) Reconcile(ctx context.Context) (Report, error) {
	var report Report

	deadlines, err := s.deadlines.List(ctx, "created_date")
	if err != nil {
		return report, fmt.Errorf("list deadlines: %w", err)
	}

	for i := range deadlines {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		d := &deadlines[i]
		report.Scanned++

		result, err := s.reconcileOne(ctx, d)
		if err != nil {
			report.Failed++
			s.logger.Error("Failed to reconcile deadline", "deadline_id", d.ID, "error", err)
			continue
		}

		switch result {
		case outcomeLinked:
			report.Linked++
		case outcomeRecreated:
			report.Recreated++
		case outcomeRepaired:
			report.Repaired++
		}
	}

	s.logger.Info("Reconcile finished",
		"scanned", report.Scanned,
		"linked", report.Linked,
		"recreated", report.Recreated,
		"repaired", report.Repaired,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *Synchronizer) reconcileOne(ctx context.Context, d *database.CaseDeadline) (outcome, error) {
	if !hasMirror(d) {
		if _, err := s.ensureMirror(ctx, d); err != nil {
			return outcomeClean, err
		}
		return outcomeLinked, nil
	}

	scheduleID := *d.ScheduleID
	mirror, err := s.schedules.Get(ctx, scheduleID)
	if entity.IsNotFound(err) {
		s.record(ctx, ActionReconcileRelink, d.ID, scheduleID, err)
		if _, err := s.ensureMirror(ctx, d); err != nil {
			return outcomeClean, err
		}
		return outcomeRecreated, nil
	}
	if err != nil {
		return outcomeClean, fmt.Errorf("load schedule mirror: %w", err)
	}

	want := MirrorFor(*d)
	if mirrorMatches(*mirror, want) {
		return outcomeClean, nil
	}

	_, err = s.schedules.Update(ctx, scheduleID, mirrorFields(want))
	s.record(ctx, ActionReconcileRepair, d.ID, scheduleID, err)
	if err != nil {
		return outcomeClean, fmt.Errorf("repair schedule mirror: %w", err)
	}
	return outcomeRepaired, nil
}
