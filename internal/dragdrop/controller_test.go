package dragdrop

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jvgags/Poe-Write/internal/domain"
)

// fakeTreeStore records the single mutation a drop is expected to make.
type fakeTreeStore struct {
	calls []string

	projectIndex int
	folderGroup  *string
	folderIndex  int
	docGroup     *string
	docIndex     int
	descendant   bool
	err          error
}

func (f *fakeTreeStore) ReorderProject(id string, targetIndex int) error {
	f.calls = append(f.calls, "ReorderProject")
	f.projectIndex = targetIndex
	return f.err
}

func (f *fakeTreeStore) ProjectIndex(id string) (int, error) {
	return f.projectIndex, nil
}

func (f *fakeTreeStore) ReorderFolder(id string, parentID *string, targetIndex int) error {
	f.calls = append(f.calls, "ReorderFolder")
	f.folderGroup = parentID
	f.folderIndex = targetIndex
	return f.err
}

func (f *fakeTreeStore) ReparentFolder(id string, parentID *string) error {
	f.calls = append(f.calls, "ReparentFolder")
	f.folderGroup = parentID
	return f.err
}

func (f *fakeTreeStore) FolderLocation(id string) (*string, int, error) {
	return f.folderGroup, f.folderIndex, nil
}

func (f *fakeTreeStore) IsFolderDescendant(checkID, ancestorID string) bool {
	return f.descendant
}

func (f *fakeTreeStore) ReorderDocument(id string, folderID *string, targetIndex int) error {
	f.calls = append(f.calls, "ReorderDocument")
	f.docGroup = folderID
	f.docIndex = targetIndex
	return f.err
}

func (f *fakeTreeStore) MoveDocumentToFolder(id string, folderID *string) error {
	f.calls = append(f.calls, "MoveDocumentToFolder")
	f.docGroup = folderID
	return f.err
}

func (f *fakeTreeStore) DocumentLocation(id string) (*string, int, error) {
	return f.docGroup, f.docIndex, nil
}

type fakeView struct {
	dimmed     string
	restored   int
	indicators map[string]Indicator
	cleared    int
}

func newFakeView() *fakeView {
	return &fakeView{indicators: map[string]Indicator{}}
}

func (v *fakeView) DimSource(kind Kind, id string)       { v.dimmed = id }
func (v *fakeView) RestoreSource()                       { v.restored++ }
func (v *fakeView) ShowIndicator(id string, i Indicator) { v.indicators[id] = i }
func (v *fakeView) ClearIndicators()                     { v.cleared++ }

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Notify(message string) { n.messages = append(n.messages, message) }

func newTestController(store TreeStore, view View, notifier Notifier) *Controller {
	return NewController(store, view, notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func rowTarget(kind Kind, id string, index int, top, height, pointerY float64) Target {
	return Target{
		Kind:     kind,
		ID:       id,
		Index:    index,
		Rect:     Rect{Top: top, Height: height},
		PointerY: pointerY,
	}
}

func TestResolveIndicator(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		dragged string
		target  Target
		want    Indicator
	}{
		{
			name:    "self hover",
			kind:    KindDocument,
			dragged: "d1",
			target:  rowTarget(KindDocument, "d1", 0, 0, 30, 15),
			want:    IndicatorNone,
		},
		{
			name:    "document over folder always drops into",
			kind:    KindDocument,
			dragged: "d1",
			target:  rowTarget(KindFolder, "f1", 0, 0, 30, 2),
			want:    IndicatorInto,
		},
		{
			name:    "folder over folder inside dead zone nests",
			kind:    KindFolder,
			dragged: "f1",
			target:  rowTarget(KindFolder, "f2", 0, 100, 30, 115+NestDeadZone),
			want:    IndicatorInto,
		},
		{
			name:    "folder over folder above dead zone reorders before",
			kind:    KindFolder,
			dragged: "f1",
			target:  rowTarget(KindFolder, "f2", 0, 100, 30, 103),
			want:    IndicatorBefore,
		},
		{
			name:    "folder over folder below dead zone reorders after",
			kind:    KindFolder,
			dragged: "f1",
			target:  rowTarget(KindFolder, "f2", 0, 100, 30, 127),
			want:    IndicatorAfter,
		},
		{
			name:    "document over document splits on midpoint",
			kind:    KindDocument,
			dragged: "d1",
			target:  rowTarget(KindDocument, "d2", 0, 0, 30, 16),
			want:    IndicatorAfter,
		},
		{
			name:    "project over document is ignored",
			kind:    KindProject,
			dragged: "p1",
			target:  rowTarget(KindDocument, "d1", 0, 0, 30, 15),
			want:    IndicatorNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(tt.kind, tt.dragged, tt.target); got != tt.want {
				t.Errorf("resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStartRejectsBadInput(t *testing.T) {
	c := newTestController(&fakeTreeStore{}, nil, nil)
	if err := c.Start("widget", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown kind: err = %v, want validation error", err)
	}
	if err := c.Start(KindDocument, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty id: err = %v, want validation error", err)
	}
}

func TestHoverUpdatesView(t *testing.T) {
	view := newFakeView()
	c := newTestController(&fakeTreeStore{}, view, nil)

	if got := c.Hover(rowTarget(KindDocument, "d2", 0, 0, 30, 5)); got != IndicatorNone {
		t.Errorf("hover outside a gesture = %q, want none", got)
	}

	if err := c.Start(KindDocument, "d1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if view.dimmed != "d1" {
		t.Errorf("dimmed = %q, want source row", view.dimmed)
	}
	if got := c.Hover(rowTarget(KindDocument, "d2", 0, 0, 30, 5)); got != IndicatorBefore {
		t.Errorf("indicator = %q, want before", got)
	}
	if view.indicators["d2"] != IndicatorBefore {
		t.Errorf("view indicator = %q, want before", view.indicators["d2"])
	}
}

func TestDropCommitsOneMutation(t *testing.T) {
	t.Run("document into folder", func(t *testing.T) {
		store := &fakeTreeStore{}
		c := newTestController(store, nil, nil)
		c.Start(KindDocument, "d1")
		if err := c.Drop(rowTarget(KindFolder, "f1", 0, 0, 30, 15)); err != nil {
			t.Fatalf("Drop: %v", err)
		}
		if len(store.calls) != 1 || store.calls[0] != "MoveDocumentToFolder" {
			t.Errorf("calls = %v, want one MoveDocumentToFolder", store.calls)
		}
		if store.docGroup == nil || *store.docGroup != "f1" {
			t.Errorf("target folder = %v, want f1", store.docGroup)
		}
	})

	t.Run("document after document in same group", func(t *testing.T) {
		store := &fakeTreeStore{docIndex: 0}
		c := newTestController(store, nil, nil)
		c.Start(KindDocument, "d1")
		// Dragged sits at index 0; dropping after the row at index 2 lands
		// at 2 once the removal shift is applied.
		if err := c.Drop(rowTarget(KindDocument, "d3", 2, 0, 30, 25)); err != nil {
			t.Fatalf("Drop: %v", err)
		}
		if store.docIndex != 2 {
			t.Errorf("target index = %d, want 2", store.docIndex)
		}
	})

	t.Run("document before document in other group", func(t *testing.T) {
		group := "f1"
		store := &fakeTreeStore{docGroup: nil}
		c := newTestController(store, nil, nil)
		c.Start(KindDocument, "d1")
		target := rowTarget(KindDocument, "d9", 1, 0, 30, 5)
		target.ParentID = &group
		if err := c.Drop(target); err != nil {
			t.Fatalf("Drop: %v", err)
		}
		// Cross-group: no removal shift.
		if store.docIndex != 1 {
			t.Errorf("target index = %d, want 1", store.docIndex)
		}
	})

	t.Run("project reorder", func(t *testing.T) {
		store := &fakeTreeStore{projectIndex: 0}
		c := newTestController(store, nil, nil)
		c.Start(KindProject, "p1")
		if err := c.Drop(rowTarget(KindProject, "p3", 2, 0, 30, 25)); err != nil {
			t.Fatalf("Drop: %v", err)
		}
		if len(store.calls) != 1 || store.calls[0] != "ReorderProject" {
			t.Errorf("calls = %v, want one ReorderProject", store.calls)
		}
		if store.projectIndex != 2 {
			t.Errorf("target index = %d, want 2", store.projectIndex)
		}
	})
}

func TestDropOnSelfNotifies(t *testing.T) {
	store := &fakeTreeStore{}
	notifier := &fakeNotifier{}
	c := newTestController(store, nil, notifier)
	c.Start(KindDocument, "d1")

	if err := c.Drop(rowTarget(KindDocument, "d1", 0, 0, 30, 15)); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("self-drop mutated the store: %v", store.calls)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.messages))
	}
}

func TestFolderIntoDescendantRefused(t *testing.T) {
	store := &fakeTreeStore{descendant: true}
	notifier := &fakeNotifier{}
	view := newFakeView()
	c := newTestController(store, view, notifier)
	c.Start(KindFolder, "f1")

	err := c.Drop(rowTarget(KindFolder, "f2", 0, 100, 30, 115))
	if !errors.Is(err, domain.ErrCycle) {
		t.Fatalf("err = %v, want cycle error", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("refused drop mutated the store: %v", store.calls)
	}
	if len(notifier.messages) != 1 {
		t.Errorf("notifications = %d, want 1", len(notifier.messages))
	}
	// Cleanup ran despite the failure.
	if view.restored == 0 {
		t.Error("source row left dimmed after refused drop")
	}
	if _, _, dragging := c.Dragging(); dragging {
		t.Error("gesture still in flight after drop")
	}
}

func TestDropAtEnd(t *testing.T) {
	t.Run("document appends to folder", func(t *testing.T) {
		store := &fakeTreeStore{}
		c := newTestController(store, nil, nil)
		c.Start(KindDocument, "d1")
		folder := "f1"
		if err := c.DropAtEnd(&folder); err != nil {
			t.Fatalf("DropAtEnd: %v", err)
		}
		if len(store.calls) != 1 || store.calls[0] != "MoveDocumentToFolder" {
			t.Errorf("calls = %v", store.calls)
		}
	})

	t.Run("folder moves to top level", func(t *testing.T) {
		store := &fakeTreeStore{}
		c := newTestController(store, nil, nil)
		c.Start(KindFolder, "f1")
		if err := c.DropAtEnd(nil); err != nil {
			t.Fatalf("DropAtEnd: %v", err)
		}
		if len(store.calls) != 1 || store.calls[0] != "ReparentFolder" {
			t.Errorf("calls = %v", store.calls)
		}
		if store.folderGroup != nil {
			t.Errorf("parent = %v, want nil", store.folderGroup)
		}
	})
}

func TestCancelRestoresView(t *testing.T) {
	store := &fakeTreeStore{}
	view := newFakeView()
	c := newTestController(store, view, nil)
	c.Start(KindDocument, "d1")
	c.Cancel()

	if view.restored == 0 {
		t.Error("cancel did not restore the source row")
	}
	if _, _, dragging := c.Dragging(); dragging {
		t.Error("gesture still in flight after cancel")
	}
	// A drop arriving after cancel is a no-op.
	if err := c.Drop(rowTarget(KindDocument, "d2", 0, 0, 30, 5)); err != nil {
		t.Fatalf("Drop after cancel: %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("late drop mutated the store: %v", store.calls)
	}
}

func TestStartCleansUpPreviousGesture(t *testing.T) {
	view := newFakeView()
	c := newTestController(&fakeTreeStore{}, view, nil)
	c.Start(KindDocument, "d1")
	c.Start(KindFolder, "f1")

	if view.restored == 0 {
		t.Error("second start did not restore the first source")
	}
	kind, id, dragging := c.Dragging()
	if !dragging || kind != KindFolder || id != "f1" {
		t.Errorf("gesture = (%q, %q, %v), want the new drag", kind, id, dragging)
	}
}
