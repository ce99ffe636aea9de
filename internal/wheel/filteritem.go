package wheel

import "github.com/lingmo/lingmoui/internal/scene"

// FilterItem is the invisible overlay the handler stacks above a target's
// content. It is enabled only while the handler is scrolling, so that hover
// and press events land on it instead of on the content mid-gesture.
type FilterItem struct {
	item  *scene.Item
	sizes []scene.Connection
}

func newFilterItem() *FilterItem {
	item := scene.NewItem(scene.KindOverlay, "WheelFilterItem")
	item.SetProperty("enabled", false)
	return &FilterItem{item: item}
}

// Item returns the overlay scene object.
func (f *FilterItem) Item() *scene.Item {
	return f.item
}

// Enabled reports whether the overlay currently intercepts events.
func (f *FilterItem) Enabled() bool {
	return scene.Bool(f.item, "enabled", false)
}

// Size returns the overlay size, which follows the target's.
func (f *FilterItem) Size() (width, height float64) {
	return scene.Float(f.item, "width"), scene.Float(f.item, "height")
}

func (f *FilterItem) setEnabled(enabled bool) {
	f.item.SetProperty("enabled", enabled)
}

// attach reparents the overlay to target, stacks it after the target's
// content item and starts following the target's size. A nil target
// detaches the overlay.
func (f *FilterItem) attach(target scene.Object) {
	f.detach()
	f.item.SetParent(target)
	if target == nil {
		return
	}
	f.item.StackAfter(scene.Ref(target, "contentItem"))
	for _, dim := range []string{"width", "height"} {
		f.item.SetProperty(dim, scene.Float(target, dim))
		f.sizes = append(f.sizes, target.OnPropertyChanged(dim, func(c scene.PropertyChange) {
			f.item.SetProperty(c.Name, scene.Float(target, c.Name))
		}))
	}
}

func (f *FilterItem) detach() {
	for _, c := range f.sizes {
		c.Disconnect()
	}
	f.sizes = nil
}

func (f *FilterItem) destroy() {
	f.detach()
	f.item.SetParent(nil)
}
