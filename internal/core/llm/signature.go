package llm

import "context"

// Target selects the provider, model and credentials for one call.
// Empty fields are resolved from configuration.
type Target struct {
	Provider ProviderName
	Model    string
	APIKey   string
}

// Invoker issues one instruction and returns the parsed output fields.
type Invoker interface {
	Invoke(ctx context.Context, target Target, instruction string, schema Schema) (Output, error)
}

// Signature binds a schema to a typed decoder.
type Signature[T any] struct {
	Schema Schema
	Decode func(Output) T
}

// Run invokes sig's schema and decodes the result into T.
func Run[T any](ctx context.Context, inv Invoker, target Target, sig Signature[T], instruction string) (T, error) {
	out, err := inv.Invoke(ctx, target, instruction, sig.Schema)
	if err != nil {
		var zero T
		return zero, err
	}

	return sig.Decode(out), nil
}

// TextSignature returns a single-field text signature.
func TextSignature(task, field, description string) Signature[string] {
	return Signature[string]{
		Schema: Schema{
			Task:   task,
			Fields: []Field{{Name: field, Kind: KindText, Description: description}},
		},
		Decode: func(o Output) string { return o.Text(field) },
	}
}

// ListSignature returns a single-field list signature.
func ListSignature(task, field, description string) Signature[[]string] {
	return Signature[[]string]{
		Schema: Schema{
			Task:   task,
			Fields: []Field{{Name: field, Kind: KindList, Description: description}},
		},
		Decode: func(o Output) []string { return o.List(field) },
	}
}
