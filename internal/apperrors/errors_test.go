package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrappedErrorsMatchTaxonomy(t *testing.T) {
	tests := []struct {
		err    error
		target error
	}{
		{err: Validation("missing email"), target: ErrValidation},
		{err: Signature(errors.New("bad mac")), target: ErrSignature},
		{err: NotFound("order"), target: ErrNotFound},
		{err: Query(errors.New("driver broke")), target: ErrQuery},
		{err: Upstream(errors.New("processor down")), target: ErrUpstream},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.target) {
			t.Fatalf("expected %v to match %v", tt.err, tt.target)
		}
		// a service-layer wrap must not break the match
		wrapped := fmt.Errorf("handle webhook: %w", tt.err)
		if !errors.Is(wrapped, tt.target) {
			t.Fatalf("expected wrapped %v to match %v", wrapped, tt.target)
		}
	}
}
