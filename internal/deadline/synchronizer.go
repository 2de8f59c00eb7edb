package deadline

import (
	"context"
	"fmt"

	"github.com/JustJay7/lawdesk/internal/database"
	"github.com/JustJay7/lawdesk/internal/entity"
	"github.com/JustJay7/lawdesk/pkg/logger"
)

// Sync log actions.
const (
	ActionCreateDeadline  = "create_deadline"
	ActionCreateMirror    = "create_mirror"
	ActionUpdateMirror    = "update_mirror"
	ActionLinkMirror      = "link_mirror"
	ActionStatusMirror    = "status_mirror"
	ActionReconcileRelink = "reconcile_relink"
	ActionReconcileRepair = "reconcile_repair"
)

// Synchronizer is the only writer of CaseDeadline.schedule_id and of mirror
// Schedule rows. None of its operations retry; a step that fails after the
// deadline was written leaves work for Reconcile.
type Synchronizer struct {
	deadlines entity.Client[database.CaseDeadline]
	schedules entity.Client[database.Schedule]
	journal   entity.Client[database.SyncLog]
	logger    *logger.Logger
}

// NewSynchronizer wires the synchronizer. journal may be nil.
func NewSynchronizer(
	deadlines entity.Client[database.CaseDeadline],
	schedules entity.Client[database.Schedule],
	journal entity.Client[database.SyncLog],
	logger *logger.Logger,
) *Synchronizer {
	return &Synchronizer{
		deadlines: deadlines,
		schedules: schedules,
		journal:   journal,
		logger:    logger,
	}
}

// Create persists a deadline for c and its Schedule mirror, then links the
// two. If the deadline was stored but mirroring failed, the stored deadline
// is returned together with a *MirrorError.
func (s *Synchronizer) Create(ctx context.Context, in Input, c *database.Case) (*database.CaseDeadline, error) {
	if c == nil || c.ID == "" {
		return nil, entity.ValidationError(entity.Deadlines, "parent case is required", nil)
	}

	d := &database.CaseDeadline{}
	in.withDefaults().apply(d)
	snapshot(d, c)

	created, err := s.deadlines.Create(ctx, d)
	if err != nil {
		s.record(ctx, ActionCreateDeadline, "", "", err)
		return nil, fmt.Errorf("create deadline: %w", err)
	}
	s.record(ctx, ActionCreateDeadline, created.ID, "", nil)

	linked, err := s.ensureMirror(ctx, created)
	if err != nil {
		s.logger.Warn("Deadline saved without schedule mirror",
			"deadline_id", created.ID,
			"case_number", created.CaseNumber,
			"error", err,
		)
		return created, &MirrorError{DeadlineID: created.ID, Err: err}
	}

	s.logger.Info("Deadline created",
		"deadline_id", linked.ID,
		"schedule_id", *linked.ScheduleID,
		"case_number", linked.CaseNumber,
	)
	return linked, nil
}

// Update merges ch into existing and persists it; fields ch leaves nil keep
// their stored value. When existing has a mirror, every mirrored field of the
// Schedule is recomputed from the merged deadline. A deadline without a
// mirror is updated alone. c, when given, refreshes the case snapshot.
//
// If the deadline was stored but its mirror was not, the stored deadline is
// returned together with a *MirrorError.
func (s *Synchronizer) Update(ctx context.Context, existing *database.CaseDeadline, ch Changes, c *database.Case) (*database.CaseDeadline, error) {
	if existing == nil || existing.ID == "" {
		return nil, entity.ValidationError(entity.Deadlines, "existing deadline is required", nil)
	}

	merged := *existing
	ch.apply(&merged)
	if c != nil {
		snapshot(&merged, c)
	}

	updated, err := s.deadlines.Update(ctx, existing.ID, deadlineFields(merged))
	if err != nil {
		return nil, fmt.Errorf("update deadline: %w", err)
	}

	if !hasMirror(existing) {
		s.logger.Debug("Deadline has no schedule mirror, skipping sync", "deadline_id", existing.ID)
		return updated, nil
	}

	scheduleID := *existing.ScheduleID
	_, err = s.schedules.Update(ctx, scheduleID, mirrorFields(MirrorFor(*updated)))
	s.record(ctx, ActionUpdateMirror, updated.ID, scheduleID, err)
	if err != nil {
		s.logger.Warn("Deadline updated without schedule mirror",
			"deadline_id", updated.ID,
			"schedule_id", scheduleID,
			"error", err,
		)
		return updated, &MirrorError{DeadlineID: updated.ID, Err: fmt.Errorf("update schedule mirror: %w", err)}
	}

	return updated, nil
}

// SetStatus moves d to status and carries the reduced status onto its
// mirror. Records that already hold the target value are not written. A
// mirror failure after the deadline was stored yields a *MirrorError.
func (s *Synchronizer) SetStatus(ctx context.Context, d *database.CaseDeadline, status database.DeadlineStatus) (*database.CaseDeadline, error) {
	if d == nil || d.ID == "" {
		return nil, entity.ValidationError(entity.Deadlines, "deadline is required", nil)
	}
	if !status.Valid() {
		return nil, entity.ValidationError(entity.Deadlines, fmt.Sprintf("unknown status %q", status), nil)
	}

	current := d
	if d.Status != status {
		updated, err := s.deadlines.Update(ctx, d.ID, entity.Fields{"status": string(status)})
		if err != nil {
			return nil, fmt.Errorf("update deadline status: %w", err)
		}
		current = updated
	}

	if !hasMirror(d) {
		return current, nil
	}

	scheduleID := *d.ScheduleID
	mirror, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		s.record(ctx, ActionStatusMirror, d.ID, scheduleID, err)
		return current, &MirrorError{DeadlineID: d.ID, Err: fmt.Errorf("load schedule mirror: %w", err)}
	}

	want := MirrorStatus(status)
	if mirror.Status == want {
		return current, nil
	}

	_, err = s.schedules.Update(ctx, scheduleID, entity.Fields{"status": string(want)})
	s.record(ctx, ActionStatusMirror, d.ID, scheduleID, err)
	if err != nil {
		return current, &MirrorError{DeadlineID: d.ID, Err: fmt.Errorf("update schedule mirror status: %w", err)}
	}

	return current, nil
}

// ensureMirror upserts the mirror of d, keyed by deadline_id, and writes
// the schedule id back onto d. Running it twice never creates a second
// mirror.
func (s *Synchronizer) ensureMirror(ctx context.Context, d *database.CaseDeadline) (*database.CaseDeadline, error) {
	payload := MirrorFor(*d)

	existing, err := s.schedules.Filter(ctx, entity.Fields{"deadline_id": d.ID}, "")
	if err != nil {
		s.record(ctx, ActionCreateMirror, d.ID, "", err)
		return nil, fmt.Errorf("look up schedule mirror: %w", err)
	}

	var mirror *database.Schedule
	if len(existing) > 0 {
		mirror, err = s.schedules.Update(ctx, existing[0].ID, mirrorFields(payload))
		s.record(ctx, ActionUpdateMirror, d.ID, existing[0].ID, err)
	} else {
		mirror, err = s.schedules.Create(ctx, &payload)
		scheduleID := ""
		if mirror != nil {
			scheduleID = mirror.ID
		}
		s.record(ctx, ActionCreateMirror, d.ID, scheduleID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("write schedule mirror: %w", err)
	}

	linked, err := s.deadlines.Update(ctx, d.ID, entity.Fields{"schedule_id": mirror.ID})
	s.record(ctx, ActionLinkMirror, d.ID, mirror.ID, err)
	if err != nil {
		return nil, fmt.Errorf("link schedule mirror: %w", err)
	}

	return linked, nil
}

// record appends a SyncLog entry. Failing to journal never fails the
// operation being journaled.
func (s *Synchronizer) record(ctx context.Context, action, deadlineID, scheduleID string, opErr error) {
	if s.journal == nil {
		return
	}

	entry := &database.SyncLog{
		DeadlineID: deadlineID,
		ScheduleID: scheduleID,
		Action:     action,
		Success:    opErr == nil,
	}
	if opErr != nil {
		entry.ErrorMessage = opErr.Error()
	}

	if _, err := s.journal.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to write sync log", "action", action, "deadline_id", deadlineID, "error", err)
	}
}
