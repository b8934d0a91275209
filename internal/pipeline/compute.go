package pipeline

// TaskKind names the categories of work the pipeline can hand to an
// accelerated-compute collaborator.
type TaskKind string

const (
	TaskNoise   TaskKind = "noise"
	TaskErosion TaskKind = "erosion"
	TaskStamp   TaskKind = "stamp"
)

// Task is one unit of offloadable work. Run is the CPU-equivalent
// computation; a collaborator that accelerates the task may skip Run and
// produce the same result through its own means, reporting the outcome via
// OnComplete.
type Task struct {
	Kind        TaskKind
	Description string
	Run         func() error
	OnComplete  func(success bool)
	Priority    int
	ForceGPU    bool
}

// Compute is the injected accelerated-compute collaborator. Submit returns
// false when the task is rejected outright; otherwise OnComplete fires
// exactly once with the task's outcome. The pipeline re-runs the
// equivalent local computation whenever submission or the task itself
// fails.
type Compute interface {
	Submit(t Task) bool
}

// LocalCompute executes tasks synchronously on the caller's goroutine. It
// is the fallback collaborator used when no accelerator is injected.
type LocalCompute struct{}

// Submit runs the task immediately and reports its outcome.
func (LocalCompute) Submit(t Task) bool {
	if t.Run == nil {
		return false
	}
	err := t.Run()
	if t.OnComplete != nil {
		t.OnComplete(err == nil)
	}
	return true
}

// offload routes fn through the collaborator, falling back to a direct
// local call when the collaborator rejects or fails the task. The stage
// blocks until the completion callback fires.
func (p *Pipeline) offload(kind TaskKind, description string, fn func() error) {
	if p.compute == nil {
		fn()
		return
	}
	done := make(chan bool, 1)
	submitted := p.compute.Submit(Task{
		Kind:        kind,
		Description: description,
		Run:         fn,
		OnComplete:  func(ok bool) { done <- ok },
	})
	if !submitted {
		fn()
		return
	}
	if ok := <-done; !ok {
		fn()
	}
}
