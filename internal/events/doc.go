// Package events provides a lightweight event mechanism that lets services
// request background work without depending on the task package directly.
// Services emit TaskRequestEvent values through an EventEmitter; handlers
// registered on the emitter translate them into concrete tasks.
package events
