package request

import (
	"context"
	"overseer/core"
)

type key int

const (
	senderKey key = iota
)

// WithSender context with the authenticated caller
func WithSender(ctx context.Context, sender core.Address) context.Context {
	return context.WithValue(ctx, senderKey, sender)
}

// SenderFrom authenticated caller of the request
func SenderFrom(ctx context.Context) (core.Address, bool) {
	sender, ok := ctx.Value(senderKey).(core.Address)
	return sender, ok
}
