package wait

// NoopWait returns immediately from Wait and does nothing on Notify. Useful
// for strategies (or tests) that never actually need to block, such as
// LocalStrategy, which never has a reader present at swap time.
type NoopWait struct{}

func (NoopWait) NewState() State { return nil }
func (NoopWait) Wait(State)      {}
func (NoopWait) Notify()         {}

var _ Strategy = NoopWait{}
