package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container collects middlewares for the next handler being built
type Container struct {
	huma.Middlewares
}

// NewContainer creates an empty container
func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add appends a middleware; nil is ignored so optional middlewares can be added unconditionally
func (mc *Container) Add(middleware func(ctx huma.Context, next func(huma.Context))) {
	if middleware == nil {
		return
	}
	mc.Middlewares = append(mc.Middlewares, middleware)
}

// GetAllAndClear returns the collected middlewares and empties the container
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
