package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialog_FirstRun(t *testing.T) {
	var d Dialog
	d.Open("")

	assert.True(t, d.IsOpen())
	assert.False(t, d.CanSave(), "empty key cannot be saved")
	assert.False(t, d.CanClose(), "dialog stays until a key is entered")

	_, ok := d.Cancel()
	assert.False(t, ok)

	d.SetInput("sk-new")
	assert.True(t, d.CanSave())

	key, ok := d.Save()
	assert.True(t, ok)
	assert.Equal(t, "sk-new", key)
	assert.False(t, d.IsOpen())
}

func TestDialog_UnchangedKeyCannotBeSaved(t *testing.T) {
	var d Dialog
	d.Open("sk-old")

	assert.False(t, d.CanSave())
	assert.True(t, d.CanClose())

	d.SetInput("sk-other")
	assert.True(t, d.CanSave())

	d.SetInput("sk-old")
	assert.False(t, d.CanSave())
}

func TestDialog_CancelRestoresOriginal(t *testing.T) {
	var d Dialog
	d.Open("sk-old")
	d.SetInput("sk-typo")

	key, ok := d.Cancel()
	assert.True(t, ok)
	assert.Equal(t, "sk-old", key)
	assert.Equal(t, "sk-old", d.input)
	assert.False(t, d.IsOpen())
}

func TestDialog_Visibility(t *testing.T) {
	var d Dialog
	d.Open("sk-old")
	assert.False(t, d.Visible())
	assert.Equal(t, "Show API key", d.VisibilityLabel())

	d.ToggleVisibility()
	assert.True(t, d.Visible())
	assert.Equal(t, "Hide API key", d.VisibilityLabel())

	d.Open("sk-old")
	assert.False(t, d.Visible(), "reopening masks the key again")
}
