package replay

var functionHandlers = map[string]handler{
	"function_begin": func(r *runner, _ *Op, _ *args) error {
		fb, err := r.mb.GenerateFunction()
		if err != nil {
			return err
		}
		r.fb, r.bb = fb, nil
		return nil
	},
	// blocks: args=[count]
	"blocks": inFunction(func(r *runner, _ *Op, a *args) error {
		n := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.fb.AllocateBlocks(n)
	}),
	"param": inFunction(func(r *runner, op *Op, _ *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.fb.CreateParameter(t)
		return nil
	}),
	"block": inFunction(func(r *runner, _ *Op, _ *args) error {
		bb, err := r.fb.GenerateBlock()
		if err != nil {
			return err
		}
		r.bb = bb
		return nil
	}),
	// block_name: args=[block], text=[name]
	"block_name": inFunction(func(r *runner, _ *Op, a *args) error {
		index := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.fb.NameBlock(index, a.text(0))
	}),
	"function_end": inFunction(func(r *runner, _ *Op, _ *args) error {
		err := r.fb.ExitFunction()
		r.fb, r.bb = nil, nil
		return err
	}),
}
