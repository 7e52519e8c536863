// Package mouse maps terminal mouse events to named screen regions and
// tracks click and drag state across events.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle in cells. W and H are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions drawn by the last render. Regions added later
// win over earlier ones where they overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(r Region) {
	h.regions = append(h.regions, r)
}

// AddRect registers a region from its coordinates.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.Add(Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Clear removes every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionDrag
	ActionDragEnd
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionHover:
		return "hover"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// Action is the interpreted form of a tea.MouseMsg.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int

	// DragDX and DragDY are the cumulative displacement since StartDrag,
	// set for ActionDrag and ActionDragEnd.
	DragDX, DragDY int
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler combines a hit map with click and drag tracking.
type Handler struct {
	HitMap *HitMap

	now func() time.Time

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick resolves a left click at (x, y). A second click on the same
// region within DoubleClickWindow is a double click; the click after that
// starts a new pair.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := h.now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= DoubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins tracking a drag from (x, y). startValue is an opaque
// integer the caller wants back at the end, e.g. a width being resized.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region id passed to StartDrag.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the displacement of (x, y) from the drag origin.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops tracking the current drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// HandleMouse interprets a bubbletea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Type = ActionScrollUp
			if msg.Shift {
				action.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			action.Type = ActionScrollDown
			if msg.Shift {
				action.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			action.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			action.Type = ActionScrollRight
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			action.Type = ActionClick
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
			action.Region = res.Region
			return action
		}
		action.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			return action
		}
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			action.DragDX, action.DragDY = h.DragDelta(msg.X, msg.Y)
			h.EndDrag()
			return action
		}
		action.Region = h.HitMap.Test(msg.X, msg.Y)
	}

	return action
}

// Clear drops every hit region. Drag state survives so a drag can continue
// across re-renders.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
