package dragdrop

// Kind identifies what is being dragged.
type Kind string

const (
	KindProject  Kind = "project"
	KindFolder   Kind = "folder"
	KindDocument Kind = "document"
)

// Indicator is the visual drop hint shown on a hovered row.
type Indicator string

const (
	IndicatorNone   Indicator = ""
	IndicatorBefore Indicator = "before"
	IndicatorAfter  Indicator = "after"
	IndicatorInto   Indicator = "into"
)

// NestDeadZone is the half-height of the band around a folder row's
// vertical center where hovering another folder means "nest inside"
// instead of a sibling reorder.
const NestDeadZone = 10.0

// Rect is a hovered row's bounding box; only the vertical extent matters.
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

func (r Rect) Midpoint() float64 {
	return r.Top + r.Height/2
}

// Target describes the row under the pointer during a hover or drop.
// ParentID is the target's own sibling group key (folder ParentID or
// document FolderID); Index is the target's position in that group.
type Target struct {
	Kind     Kind    `json:"kind"`
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
	Index    int     `json:"index"`
	Rect     Rect    `json:"rect"`
	PointerY float64 `json:"pointer_y"`
}

// View receives the visual feedback of a drag gesture: the dragged row is
// dimmed for the whole gesture and exactly one indicator shows at a time.
type View interface {
	DimSource(kind Kind, id string)
	RestoreSource()
	ShowIndicator(targetID string, indicator Indicator)
	ClearIndicators()
}

// Notifier surfaces rejected drops to the user; a refused drop is
// feedback, never a silent failure.
type Notifier interface {
	Notify(message string)
}

// NopView ignores all feedback, for headless use.
type NopView struct{}

func (NopView) DimSource(Kind, string)          {}
func (NopView) RestoreSource()                  {}
func (NopView) ShowIndicator(string, Indicator) {}
func (NopView) ClearIndicators()                {}

// TreeStore is the mutation surface a drop commits to.
type TreeStore interface {
	ReorderProject(id string, targetIndex int) error
	ProjectIndex(id string) (int, error)

	ReorderFolder(id string, targetParentID *string, targetIndex int) error
	ReparentFolder(id string, newParentID *string) error
	FolderLocation(id string) (parentID *string, index int, err error)
	IsFolderDescendant(checkID, ancestorID string) bool

	ReorderDocument(id string, targetFolderID *string, targetIndex int) error
	MoveDocumentToFolder(id string, folderID *string) error
	DocumentLocation(id string) (folderID *string, index int, err error)
}
