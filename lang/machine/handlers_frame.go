package machine

func init() {
	registerHandler(MOVE, opMove)
	registerHandler(DEFVAR, opDefvar)
	registerHandler(CREATEFRAME, opCreateframe)
	registerHandler(PUSHFRAME, opPushframe)
	registerHandler(POPFRAME, opPopframe)
	registerHandler(PUSHS, opPushs)
	registerHandler(POPS, opPops)
	registerHandler(CLEARS, opClears)
}

func opMove(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), v); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opDefvar(e *Engine, instr Instruction) (ctrl, error) {
	if err := e.Frames.Declare(e.dst(instr)); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opCreateframe(e *Engine, _ Instruction) (ctrl, error) {
	e.Frames.CreateFrame()
	return next, nil
}

func opPushframe(e *Engine, _ Instruction) (ctrl, error) {
	if err := e.Frames.PushFrame(); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opPopframe(e *Engine, _ Instruction) (ctrl, error) {
	if err := e.Frames.PopFrame(); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opPushs(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 0)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(v)
	return next, nil
}

func opPops(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), v); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opClears(e *Engine, _ Instruction) (ctrl, error) {
	e.Operands.Clear()
	return next, nil
}
