package archive

// List loads the directory at path and returns the basenames of every
// present entry, in slot order (spec.md §4.6). Read-only.
func List(path string) ([]string, error) {
	a, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return a.List(), nil
}
