// Package agent answers natural-language questions about a parsed portfolio
// through a Gemini chat equipped with deterministic financial tools.
//
// Tools only ever receive concrete data: each library is constructed over one
// portfolio's artifacts, so a chat session can never reference data it does
// not own.
package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library routes a function call from the model to the matching tool.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a callable capability exposed to the model.
type Function interface {
	// Declaration describes this function to the model.
	Declaration() *genai.FunctionDeclaration
	// Call invokes this function.
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary builds a Library dispatching over the given functions by name.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			d := f.Declaration()
			if d.Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("unknown function %s", call.Name),
			},
		}
	}
}

// NewDeclaration collects the declarations of the given functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}

// Func implements a simple Function.
type Func struct {
	// Decl declares this function.
	Decl *genai.FunctionDeclaration
	// Func calls this function.
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// errResponse is the uniform error shape for tool failures; the model reads
// it and phrases the failure to the user.
func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}
