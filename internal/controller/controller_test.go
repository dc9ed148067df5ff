package controller

import (
	"context"
	"errors"

	"github.com/lumenlabs/lumen-cli/internal/models"
)

var errGateway = errors.New("gateway unavailable")

// fakeRecorder captures appended activity records, optionally failing.
type fakeRecorder struct {
	records []models.Activity
	err     error
}

func (r *fakeRecorder) AppendActivity(ctx context.Context, rec models.Activity) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRecorder) byType(capType models.CapabilityType) []models.Activity {
	var out []models.Activity
	for _, rec := range r.records {
		if rec.Type == capType {
			out = append(out, rec)
		}
	}
	return out
}
