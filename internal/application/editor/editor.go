// Package editor implements the create/edit modal shared by every entity
// page: a form buffer, validation, save, and confirmed delete.
package editor

import (
	"context"
	"fmt"
	"reflect"

	"helpdesk/internal/domain/shared"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/query"
	"helpdesk/internal/shared/utils"
)

type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// DeletePrompt is asked before any delete.
const DeletePrompt = "Tem certeza que deseja excluir este registro?"

// Reloader is the list page that owns the edited records.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(prompt string) bool

// Hooks customize one entity's editor.
type Hooks[T, Form any] struct {
	// AfterSave runs once the record itself was saved. existing is nil in
	// create mode.
	AfterSave func(ctx context.Context, saved T, form Form, existing *T) error
}

// Spec describes how an entity is edited.
type Spec[T, Form any] struct {
	Name     string
	NewForm  func() Form
	FormFrom func(T) Form
	IDOf     func(T) int64
	Hooks    Hooks[T, Form]
}

type Editor[T, Form any] struct {
	store   shared.Writer[T, Form]
	spec    Spec[T, Form]
	list    Reloader
	confirm ConfirmFunc
	logger  logger.Interface

	mode     Mode
	existing *T
	initial  Form
	form     Form
	alert    string
}

func New[T, Form any](
	store shared.Writer[T, Form],
	spec Spec[T, Form],
	list Reloader,
	confirm ConfirmFunc,
	logger logger.Interface,
) *Editor[T, Form] {
	return &Editor[T, Form]{
		store:   store,
		spec:    spec,
		list:    list,
		confirm: confirm,
		logger:  logger.With("entity", spec.Name),
	}
}

// Open shows the modal. A nil record opens it in create mode with the
// entity defaults; otherwise the form is pre-populated for editing.
func (e *Editor[T, Form]) Open(record *T) {
	e.alert = ""
	if record == nil {
		e.mode = ModeCreate
		e.existing = nil
		e.form = e.spec.NewForm()
	} else {
		r := *record
		e.mode = ModeEdit
		e.existing = &r
		e.form = e.spec.FormFrom(r)
	}
	e.initial = e.form
}

// Form returns the buffer the operator edits.
func (e *Editor[T, Form]) Form() *Form {
	return &e.form
}

func (e *Editor[T, Form]) Mode() Mode {
	return e.mode
}

func (e *Editor[T, Form]) IsOpen() bool {
	return e.mode != ModeClosed
}

// Alert is the blocking message left by the last failed save or delete.
func (e *Editor[T, Form]) Alert() string {
	return e.alert
}

func (e *Editor[T, Form]) Close() {
	e.mode = ModeClosed
	e.existing = nil
	e.alert = ""
}

// Save validates the form and persists it: a full POST in create mode, a
// PUT of the changed fields in edit mode. On success the modal closes and
// the owning list reloads; on failure it stays open with an alert.
func (e *Editor[T, Form]) Save(ctx context.Context) (T, error) {
	var zero T
	if !e.IsOpen() {
		return zero, errors.NewBadRequestError("editor is not open")
	}

	if err := utils.ValidateStruct(e.form); err != nil {
		e.logger.Warnw("form rejected", "mode", e.mode, "error", err)
		return zero, err
	}

	var (
		saved T
		err   error
	)
	switch e.mode {
	case ModeCreate:
		saved, err = e.store.Create(ctx, e.form)
	default:
		saved, err = e.update(ctx)
	}
	if err != nil {
		e.alert = errors.UserMessage(err)
		e.logger.Errorw("failed to save record", "mode", e.mode, "error", err)
		return zero, err
	}

	if e.spec.Hooks.AfterSave != nil {
		if err := e.spec.Hooks.AfterSave(ctx, saved, e.form, e.existing); err != nil {
			e.alert = errors.UserMessage(err)
			e.logger.Errorw("failed to save related records", "mode", e.mode, "error", err)
			return saved, err
		}
	}

	e.logger.Infow("record saved", "mode", e.mode, "id", e.spec.IDOf(saved))
	e.Close()
	e.reload(ctx)
	return saved, nil
}

func (e *Editor[T, Form]) update(ctx context.Context) (T, error) {
	id := e.spec.IDOf(*e.existing)

	changes, err := Diff(e.initial, e.form)
	if err != nil {
		return *e.existing, err
	}
	if len(changes) == 0 {
		e.logger.Debugw("nothing changed", "id", id)
		return *e.existing, nil
	}
	return e.store.Update(ctx, id, changes)
}

// Delete asks for confirmation and deletes the record. It reports whether
// the record was deleted; a declined prompt is not an error.
func (e *Editor[T, Form]) Delete(ctx context.Context, id int64) (bool, error) {
	if e.confirm != nil && !e.confirm(DeletePrompt) {
		e.logger.Debugw("delete cancelled", "id", id)
		return false, nil
	}

	if err := e.store.Delete(ctx, id); err != nil {
		e.alert = errors.UserMessage(err)
		e.logger.Errorw("failed to delete record", "id", id, "error", err)
		return false, err
	}

	e.logger.Infow("record deleted", "id", id)
	e.reload(ctx)
	return true, nil
}

func (e *Editor[T, Form]) reload(ctx context.Context) {
	if e.list == nil {
		return
	}
	if err := e.list.Reload(ctx); err != nil {
		e.logger.Errorw("failed to reload list", "error", err)
	}
}

// Diff returns the wire keys whose value differs between two forms. Keys
// present before and cleared now map to nil.
func Diff[Form any](before, after Form) (map[string]any, error) {
	old, err := query.Criteria(before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	cur, err := query.Criteria(after)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	changes := map[string]any{}
	for k, v := range cur {
		if prev, ok := old[k]; !ok || !reflect.DeepEqual(prev, v) {
			changes[k] = v
		}
	}
	for k := range old {
		if _, ok := cur[k]; !ok {
			changes[k] = nil
		}
	}
	return changes, nil
}
