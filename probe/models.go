package probe

import (
	"context"
	"fmt"
	"io"

	"apiprobe/backend"
)

// Doer issues one request and returns the fully read reply.
type Doer interface {
	Do(ctx context.Context, method, path string, payload any) (*backend.Response, error)
}

// Step is one probe: a single request and the summary printed for its reply.
type Step struct {
	Name    string
	Marker  string
	Title   string
	Method  string
	Path    string
	Payload any
	// Render prints the projection of the decoded body. The status line has
	// already been written.
	Render func(w io.Writer, body any) error
}

// Result reports how far a run got.
type Result struct {
	// Calls counts requests that were attempted, including a failed one.
	Calls int
	// Completed counts steps whose reply was received and rendered.
	Completed int
	Err       error
}

// StepError is the single failure kind of a run. It names the step that broke
// the sequence.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Fixture is the user and structure the sequence creates and reads back.
type Fixture struct {
	FullName      string
	Email         string
	Password      string
	StructureName string
	Nodes         []Node
	Bonds         []Bond
}

type Node struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type Bond struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Type string `json:"type"`
}

type RegisterPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StructurePayload struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
	Bonds []Bond `json:"bonds"`
}
