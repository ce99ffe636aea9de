package scene

// FlickableProperties lists the numeric properties of a scrollable surface.
var FlickableProperties = []string{
	"width", "height",
	"contentWidth", "contentHeight",
	"contentX", "contentY",
	"topMargin", "bottomMargin", "leftMargin", "rightMargin",
	"originX", "originY",
}

// NewFlickable creates a scrollable surface of the given viewport and
// content size. Its visual content lives in a child item exposed as the
// "contentItem" property.
func NewFlickable(name string, width, height, contentWidth, contentHeight float64) *Item {
	f := NewItem(KindFlickable, name)
	for _, p := range FlickableProperties {
		f.props[p] = 0.0
	}
	f.props["width"] = width
	f.props["height"] = height
	f.props["contentWidth"] = contentWidth
	f.props["contentHeight"] = contentHeight

	content := NewItem(KindItem, name+".contentItem")
	content.props["width"] = contentWidth
	content.props["height"] = contentHeight
	content.SetParent(f)
	f.props["contentItem"] = content
	return f
}

// NewScrollBar creates an interactive scrollbar.
func NewScrollBar(name string) *Item {
	sb := NewItem(KindScrollBar, name)
	sb.props["interactive"] = true
	return sb
}

// NewScrollBarAttached attaches the given scrollbars to owner. Either
// scrollbar may be nil.
func NewScrollBarAttached(owner Object, vertical, horizontal *Item) *Item {
	a := NewItem(KindScrollBarAttached, "ScrollBar")
	a.props["vertical"] = nil
	a.props["horizontal"] = nil
	if vertical != nil {
		a.props["vertical"] = vertical
	}
	if horizontal != nil {
		a.props["horizontal"] = horizontal
	}
	a.SetParent(owner)
	return a
}

// NewScrollView creates a scroll view composite.
func NewScrollView(name string, width, height float64) *Item {
	v := NewItem(KindScrollView, name)
	v.props["width"] = width
	v.props["height"] = height
	return v
}
