package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary inside Reflect.
type PhaseEvent struct {
	Name    Stage
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Reflect.
type PhaseObserver func(PhaseEvent)

// begin starts a phase and returns the function that ends it.
func (o PhaseObserver) begin(name Stage) func() {
	if o == nil {
		return func() {}
	}
	start := time.Now()
	o(PhaseEvent{Name: name, Status: PhaseStart})
	return func() {
		o(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start)})
	}
}

// observerFor turns phase events of one file into progress events.
func observerFor(sink ProgressSink, file string) PhaseObserver {
	if sink == nil {
		return nil
	}
	return func(ev PhaseEvent) {
		if ev.Status != PhaseStart {
			return
		}
		sink.OnEvent(Event{File: file, Stage: ev.Name, Status: StatusWorking})
	}
}
