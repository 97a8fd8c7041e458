package irbuild

import "errors"

var (
	// ErrUndefinedMethodGeneration is returned when a body is requested but
	// every function definition already has one.
	ErrUndefinedMethodGeneration = errors.New("no function definition left to generate")
	// ErrBlockAddressScope is returned for block address constants created
	// outside a function body.
	ErrBlockAddressScope = errors.New("block address constant outside function scope")
	// ErrBlockCursor is returned when more blocks are generated than allocated.
	ErrBlockCursor = errors.New("block cursor past allocated blocks")
	// ErrBlocksAllocated is returned when AllocateBlocks is called twice.
	ErrBlocksAllocated = errors.New("blocks already allocated")
	// ErrModuleFinished is returned for calls after ExitModule.
	ErrModuleFinished = errors.New("module already finished")
	// ErrMissingFunctionBody is returned by ExitModule while definitions lack a body.
	ErrMissingFunctionBody = errors.New("function definition without body")
	// ErrFunctionOpen is returned when a body is requested before the previous one exited.
	ErrFunctionOpen = errors.New("previous function body still open")
	// ErrNoInstruction is returned by AttachLocation on an empty block.
	ErrNoInstruction = errors.New("no instruction to attach location to")
)
