package transfer

// ErrInvalidImport reports an import file whose content does not match
// the expected shape. The in-memory lists are left untouched when this
// is returned.
type ErrInvalidImport struct {
	Err error
}

func (e *ErrInvalidImport) Error() string {
	return "invalid import file: " + e.Err.Error()
}

func (e *ErrInvalidImport) Unwrap() error {
	return e.Err
}
