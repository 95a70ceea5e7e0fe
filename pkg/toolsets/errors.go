package toolsets

import "fmt"

// ToolsetDoesNotExistError reports a toolset ID that matches no registered
// toolset, typically a typo in --toolsets.
type ToolsetDoesNotExistError struct {
	Name string
}

func (e *ToolsetDoesNotExistError) Error() string {
	return fmt.Sprintf("toolset %s does not exist", e.Name)
}

// Is matches any ToolsetDoesNotExistError regardless of name, so callers can
// test with errors.Is against a zero-value target.
func (e *ToolsetDoesNotExistError) Is(target error) bool {
	_, ok := target.(*ToolsetDoesNotExistError)
	return ok
}

func NewToolsetDoesNotExistError(name string) *ToolsetDoesNotExistError {
	return &ToolsetDoesNotExistError{Name: name}
}

// ToolDoesNotExistError reports a tool name absent from the registry.
type ToolDoesNotExistError struct {
	Name string
}

func (e *ToolDoesNotExistError) Error() string {
	return fmt.Sprintf("tool %s does not exist", e.Name)
}

func NewToolDoesNotExistError(name string) *ToolDoesNotExistError {
	return &ToolDoesNotExistError{Name: name}
}
