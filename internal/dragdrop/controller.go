package dragdrop

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// Controller translates a pointer-driven drag gesture into exactly one
// tree-store mutation. The gesture is single-pointer by construction, one
// dragged id at a time; the mutex only serializes calls arriving through
// the transport layer.
type Controller struct {
	mu       sync.Mutex
	store    TreeStore
	view     View
	notifier Notifier
	logger   *slog.Logger

	dragging  bool
	kind      Kind
	draggedID string
}

// LogNotifier reports refused drops through the logger when no richer
// feedback channel is attached.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(message string) {
	n.Logger.Warn("drop rejected", "reason", message)
}

func NewController(store TreeStore, view View, notifier Notifier, logger *slog.Logger) *Controller {
	if view == nil {
		view = NopView{}
	}
	return &Controller{store: store, view: view, notifier: notifier, logger: logger}
}

// Start begins a gesture, dimming the source row. A gesture already in
// flight is cancelled first; a stray second drag must never leave the
// previous source stuck dimmed.
func (c *Controller) Start(kind Kind, id string) error {
	switch kind {
	case KindProject, KindFolder, KindDocument:
	default:
		return &domain.ValidationError{Message: fmt.Sprintf("unknown drag kind %q", kind)}
	}
	if id == "" {
		return &domain.ValidationError{Message: "drag id is required"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		c.cleanupLocked()
	}
	c.dragging = true
	c.kind = kind
	c.draggedID = id
	c.view.DimSource(kind, id)
	return nil
}

// Dragging reports the gesture in flight, if any.
func (c *Controller) Dragging() (Kind, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind, c.draggedID, c.dragging
}

// Hover resolves the drop indicator for the row under the pointer and
// updates the view. Outside a gesture it is a no-op.
func (c *Controller) Hover(t Target) Indicator {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return IndicatorNone
	}
	ind := resolve(c.kind, c.draggedID, t)
	c.view.ClearIndicators()
	if ind != IndicatorNone {
		c.view.ShowIndicator(t.ID, ind)
	}
	return ind
}

// resolve maps the gesture geometry to a drop action. A document over a
// folder row always means "drop into"; folder over folder nests only
// inside the dead-zone band around the row center; everything else is a
// before/after split on the row midpoint.
func resolve(kind Kind, draggedID string, t Target) Indicator {
	if t.ID == draggedID {
		return IndicatorNone
	}
	switch {
	case kind == KindDocument && t.Kind == KindFolder:
		return IndicatorInto
	case kind == KindFolder && t.Kind == KindFolder:
		if math.Abs(t.PointerY-t.Rect.Midpoint()) <= NestDeadZone {
			return IndicatorInto
		}
		return beforeOrAfter(t)
	case kind == t.Kind:
		return beforeOrAfter(t)
	default:
		return IndicatorNone
	}
}

func beforeOrAfter(t Target) Indicator {
	if t.PointerY < t.Rect.Midpoint() {
		return IndicatorBefore
	}
	return IndicatorAfter
}

// Drop commits the gesture with a single store mutation. Cleanup runs
// unconditionally, including when the mutation fails: the source row is
// restored and all indicators cleared, so a failed drop never leaves the
// tree dimmed. A drop arriving after a cancel already cleared state is a
// no-op.
func (c *Controller) Drop(t Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return nil
	}
	kind, id := c.kind, c.draggedID
	defer c.cleanupLocked()

	ind := resolve(kind, id, t)
	if ind == IndicatorNone {
		if t.ID == id {
			c.notify("Cannot drop an item onto itself.")
		}
		return nil
	}
	return c.commit(kind, id, t, ind)
}

// DropAtEnd commits the gesture onto the trailing drop zone of a group:
// the dragged item is appended at the end of the group keyed by parentID
// (nil = top level; ignored for projects).
func (c *Controller) DropAtEnd(parentID *string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return nil
	}
	kind, id := c.kind, c.draggedID
	defer c.cleanupLocked()

	var err error
	switch kind {
	case KindProject:
		err = c.store.ReorderProject(id, math.MaxInt32)
	case KindFolder:
		err = c.store.ReparentFolder(id, parentID)
	case KindDocument:
		err = c.store.MoveDocumentToFolder(id, parentID)
	}
	return c.surface(err)
}

// Cancel aborts the gesture and restores all visuals.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupLocked()
}

func (c *Controller) commit(kind Kind, id string, t Target, ind Indicator) error {
	switch {
	case kind == KindDocument && ind == IndicatorInto:
		return c.surface(c.store.MoveDocumentToFolder(id, &t.ID))

	case kind == KindFolder && ind == IndicatorInto:
		if c.store.IsFolderDescendant(t.ID, id) {
			c.notify("Cannot move a folder into its own subfolder.")
			return &domain.CycleError{Message: "cannot move a folder into its own subfolder"}
		}
		return c.surface(c.store.ReparentFolder(id, &t.ID))

	case kind == KindProject:
		idx := insertIndex(t, ind)
		if cur, err := c.store.ProjectIndex(id); err == nil && cur < idx {
			idx--
		}
		return c.surface(c.store.ReorderProject(id, idx))

	case kind == KindFolder:
		idx := insertIndex(t, ind)
		if group, cur, err := c.store.FolderLocation(id); err == nil && sameID(group, t.ParentID) && cur < idx {
			idx--
		}
		return c.surface(c.store.ReorderFolder(id, t.ParentID, idx))

	case kind == KindDocument:
		idx := insertIndex(t, ind)
		if group, cur, err := c.store.DocumentLocation(id); err == nil && sameID(group, t.ParentID) && cur < idx {
			idx--
		}
		return c.surface(c.store.ReorderDocument(id, t.ParentID, idx))
	}
	return nil
}

// insertIndex turns the before/after split into an insertion index
// relative to the target group before the dragged item is removed from
// it; commit corrects for same-group removal shift.
func insertIndex(t Target, ind Indicator) int {
	if ind == IndicatorAfter {
		return t.Index + 1
	}
	return t.Index
}

// surface routes rejected drops to the notifier so a refused gesture is
// visible feedback, then hands the error back for the transport layer.
func (c *Controller) surface(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrCycle) {
		c.notify(err.Error())
	} else {
		c.logger.Warn("drop mutation failed", "error", err)
	}
	return err
}

func (c *Controller) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}

// cleanupLocked resets gesture state and visuals. It must stay safe to
// call twice: drop and cancel can race through the transport layer.
func (c *Controller) cleanupLocked() {
	c.dragging = false
	c.kind = ""
	c.draggedID = ""
	c.view.RestoreSource()
	c.view.ClearIndicators()
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
