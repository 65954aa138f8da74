package viewer

import "github.com/ncruces/zenity"

// NativeDialogs shows the platform's own dialogs through zenity.
type NativeDialogs struct{}

// Entry asks for a line of text.
func (NativeDialogs) Entry(prompt string) (string, error) {
	return zenity.Entry(prompt, zenity.Title("New node"))
}

// OpenFile asks for a JSON tree.
func (NativeDialogs) OpenFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open tree"),
		zenity.FileFilters{
			{Name: "JSON trees", Patterns: []string{"*.json"}},
		},
	)
}
