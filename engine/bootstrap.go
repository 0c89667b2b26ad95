package engine

import (
	"context"

	"github.com/wqq1991/neo-gui-nel/chaincontext"
	"github.com/wqq1991/neo-gui-nel/scripttable"
	"github.com/wqq1991/neo-gui-nel/syscall"
	"github.com/wqq1991/neo-gui-nel/trace"
)

// Run implements §4.6's convenience bootstrap: build an Engine with a
// fresh in-memory script table and syscall dispatcher, load script as
// a non-push-only entry frame, and execute it to completion with no
// gas ceiling (test mode). persistingBlock may be nil, in which case
// one is synthesized on top of the genesis-like tip.
func Run(ctx context.Context, script, container []byte, persistingBlock *chaincontext.Block) bool {
	e, _ := build(script, container, persistingBlock)
	return e.Execute(ctx)
}

// RunWithDebug behaves like Run but attaches a fresh trace.Buffer
// before loading the script, and returns it alongside the outcome so
// callers can inspect the full step-by-step recording regardless of
// whether execution halted or faulted.
func RunWithDebug(ctx context.Context, script, container []byte, persistingBlock *chaincontext.Block) (bool, *trace.Buffer) {
	e, buf := buildDebug(script, container, persistingBlock)
	ok := e.Execute(ctx)
	return ok, buf
}

func build(script, container []byte, persistingBlock *chaincontext.Block) (*Engine, *syscall.Dispatcher) {
	if persistingBlock == nil {
		persistingBlock = chaincontext.SynthesizeBlock(chaincontext.Tip())
	}
	dispatcher := syscall.New(persistingBlock, nil, nil, nil, scripttable.New(), nil)
	e := New(TriggerApplication, container, dispatcher.ScriptTable(), dispatcher, 0, true)
	e.LoadScript(script, false)
	return e, dispatcher
}

func buildDebug(script, container []byte, persistingBlock *chaincontext.Block) (*Engine, *trace.Buffer) {
	if persistingBlock == nil {
		persistingBlock = chaincontext.SynthesizeBlock(chaincontext.Tip())
	}
	dispatcher := syscall.New(persistingBlock, nil, nil, nil, scripttable.New(), nil)
	e := New(TriggerApplication, container, dispatcher.ScriptTable(), dispatcher, 0, true)
	buf := trace.NewBuffer()
	e.BeginDebug(buf)
	e.LoadScript(script, false)
	return e, buf
}
