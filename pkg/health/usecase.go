package health

import (
	"context"
	"fmt"
)

// Checker is one dependency the service needs before it can take traffic.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase reports whether every dependency is reachable.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready stops at the first failing checker and names it in the error.
func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}
