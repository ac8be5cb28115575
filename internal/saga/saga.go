// Package saga runs multi-step provisioning flows as an ordered list of
// (action, compensating action) pairs. On failure, compensations for the
// steps already completed run in reverse order.
package saga

import (
	"fmt"

	logrus "github.com/sirupsen/logrus"
)

// Step is one unit of a flow. Compensate may be nil for steps that need
// no cleanup.
type Step struct {
	Name       string
	Run        func() error
	Compensate func() error
}

// Execute runs steps in order. The returned error names the failed step.
// Compensation failures are logged and folded into the error but never
// stop the remaining compensations from running.
func Execute(steps []Step) error {
	for i, s := range steps {
		if err := s.Run(); err != nil {
			compErr := unwind(steps[:i])
			if compErr != nil {
				return fmt.Errorf("step %q failed: %w (additionally: %v)", s.Name, err, compErr)
			}
			return fmt.Errorf("step %q failed: %w", s.Name, err)
		}
	}
	return nil
}

func unwind(done []Step) error {
	var firstErr error
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		if s.Compensate == nil {
			continue
		}
		if err := s.Compensate(); err != nil {
			logrus.WithError(err).Errorf("compensation for step %q failed", s.Name)
			if firstErr == nil {
				firstErr = fmt.Errorf("compensation for step %q failed: %w", s.Name, err)
			}
		}
	}
	return firstErr
}
