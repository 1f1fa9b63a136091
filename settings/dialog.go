package settings

// Dialog is the API key form: it edits a local copy and only hands the
// value back on Save.
type Dialog struct {
	open     bool
	original string
	input    string
	visible  bool
}

// Open starts editing from the currently stored key, masked.
func (d *Dialog) Open(current string) {
	d.open = true
	d.original = current
	d.input = current
	d.visible = false
}

func (d *Dialog) IsOpen() bool { return d.open }
func (d *Dialog) Visible() bool { return d.visible }
func (d *Dialog) SetInput(v string) { d.input = v }

func (d *Dialog) ToggleVisibility() {
	d.visible = !d.visible
}

// VisibilityLabel names the action the toggle performs next.
func (d *Dialog) VisibilityLabel() string {
	if d.visible {
		return "Hide API key"
	}
	return "Show API key"
}

// CanSave is false for an empty input, or an input equal to a non-empty
// original.
func (d *Dialog) CanSave() bool {
	if d.input == "" {
		return false
	}
	return d.original == "" || d.input != d.original
}

// CanClose prevents dismissing the dialog while the field is empty.
func (d *Dialog) CanClose() bool {
	return d.input != ""
}

// Save closes the dialog and returns the key to persist.
func (d *Dialog) Save() (string, bool) {
	if !d.open || !d.CanSave() {
		return "", false
	}
	d.open = false
	return d.input, true
}

// Cancel closes the dialog and returns the key it was opened with.
func (d *Dialog) Cancel() (string, bool) {
	if !d.open || !d.CanClose() {
		return "", false
	}
	d.open = false
	d.input = d.original
	return d.original, true
}
