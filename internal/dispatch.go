package internal

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgTick carries one scheduler tick onto the bubbletea event loop.
type MsgTick struct {
	fire func()
}

// Dispatcher posts scheduler callbacks into a running program so they
// execute inside Update, on the same goroutine as key handling.
//
// The program is bound after construction with SetProgram because the
// model has to exist before tea.NewProgram. Ticks dispatched before
// that are dropped.
type Dispatcher struct {
	program atomic.Pointer[tea.Program]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) SetProgram(p *tea.Program) {
	d.program.Store(p)
}

// Dispatch is the ticker.Loop dispatch function.
func (d *Dispatcher) Dispatch(fire func()) {
	if p := d.program.Load(); p != nil {
		p.Send(MsgTick{fire: fire})
	}
}
