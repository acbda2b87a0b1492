// Package userctx carries the authenticated subject through request contexts.
// The HTTP auth middleware sets it; stdio calls never have one.
package userctx

import "context"

type subjectKey struct{}

// WithSubject returns ctx carrying the token subject.
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// Subject reports the subject stored by WithSubject. Empty subjects count as absent.
func Subject(ctx context.Context) (string, bool) {
	sub, _ := ctx.Value(subjectKey{}).(string)
	return sub, sub != ""
}
