package model

// DisplayFlags is the persisted set of display preferences.
type DisplayFlags struct {
	ShowHidden bool `json:"show_hidden"`
	ShowDirs   bool `json:"show_dirs"`
	RepeatShow bool `json:"repeat_show"`
}

// Toggles holds the flag switches given on one invocation.
type Toggles struct {
	Hidden bool
	Dirs   bool
	Repeat bool
}

// Toggle inverts every flag whose switch is set and passes the rest through.
func (f DisplayFlags) Toggle(t Toggles) DisplayFlags {
	if t.Hidden {
		f.ShowHidden = !f.ShowHidden
	}
	if t.Dirs {
		f.ShowDirs = !f.ShowDirs
	}
	if t.Repeat {
		f.RepeatShow = !f.RepeatShow
	}
	return f
}

// Any reports whether at least one switch is set.
func (t Toggles) Any() bool {
	return t.Hidden || t.Dirs || t.Repeat
}
