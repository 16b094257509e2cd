package state

import tele "gopkg.in/telebot.v4"

// fsmHandlers maps each conversation state to the handler that consumes
// the next message while a user sits in that state.
var fsmHandlers = map[State]tele.HandlerFunc{}

// RegisterHandler binds a state to its message handler. Registration
// happens once during app assembly, before any update is processed.
func RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	fsmHandlers[st] = h
}
