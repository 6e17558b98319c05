package display

// Source is what the on-screen timer reads each frame.
type Source interface {
	IsWorking() bool
	IsVisibleForcing() bool
	IsVisible() bool
}

// Visible reports whether the timer should be drawn. By default it is shown
// only while working; forcing overrides that with the timer's visible flag.
func Visible(src Source) bool {
	if src.IsVisibleForcing() {
		return src.IsVisible()
	}
	return src.IsWorking()
}
