// Package signal implements connect/disconnect style event subscriptions.
package signal

// HandlerID identifies a connected handler. The zero value is never issued.
type HandlerID uint64

type handler struct {
	id HandlerID
	fn func()
}

// Signal is a list of handlers invoked in connection order.
//
// Signal is not safe for concurrent use; it lives on the event loop goroutine.
// A handler disconnected while an emission is in progress is not called by
// that emission.
type Signal struct {
	lastID   HandlerID
	handlers []handler
}

// Connect registers fn and returns its handle.
func (signal *Signal) Connect(fn func()) HandlerID {
	signal.lastID++
	signal.handlers = append(signal.handlers, handler{id: signal.lastID, fn: fn})
	return signal.lastID
}

// Disconnect removes the handler. It reports whether the handler was connected.
func (signal *Signal) Disconnect(id HandlerID) bool {
	for index, entry := range signal.handlers {
		if entry.id == id {
			signal.handlers = append(signal.handlers[:index:index], signal.handlers[index+1:]...)
			return true
		}
	}
	return false
}

// Connected reports whether id is still connected.
func (signal *Signal) Connected(id HandlerID) bool {
	for _, entry := range signal.handlers {
		if entry.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of connected handlers.
func (signal *Signal) Len() int {
	return len(signal.handlers)
}

// Emit calls every connected handler synchronously.
func (signal *Signal) Emit() {
	snapshot := append([]handler(nil), signal.handlers...)
	for _, entry := range snapshot {
		if !signal.Connected(entry.id) {
			continue
		}
		entry.fn()
	}
}

// DisconnectAll removes every handler.
func (signal *Signal) DisconnectAll() {
	signal.handlers = nil
}
