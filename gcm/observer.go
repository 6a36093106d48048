// SPDX-License-Identifier: MIT

package gcm

// Observer receives estimator progress. Calls are synchronous and made from
// the goroutine running Estimate; implementations must not block for long.
type Observer interface {
	// OnStart is called once after validation, before the first solve.
	OnStart(n, t, maxIter int)
	// OnIteration is called after every solve with the L1 change and objective.
	OnIteration(it int, err, objective float64)
	// OnFinish is called once with the completed trace.
	OnFinish(tr *Trace)
}

// MultiObserver fans every call out to each non-nil observer in order.
type MultiObserver []Observer

// OnStart implements Observer.
func (m MultiObserver) OnStart(n, t, maxIter int) {
	for _, o := range m {
		if o != nil {
			o.OnStart(n, t, maxIter)
		}
	}
}

// OnIteration implements Observer.
func (m MultiObserver) OnIteration(it int, err, objective float64) {
	for _, o := range m {
		if o != nil {
			o.OnIteration(it, err, objective)
		}
	}
}

// OnFinish implements Observer.
func (m MultiObserver) OnFinish(tr *Trace) {
	for _, o := range m {
		if o != nil {
			o.OnFinish(tr)
		}
	}
}

type nopObserver struct{}

func (nopObserver) OnStart(int, int, int) {}

func (nopObserver) OnIteration(int, float64, float64) {}

func (nopObserver) OnFinish(*Trace) {}
