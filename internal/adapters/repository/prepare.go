package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/pkg/metrics"
)

// prepareCreate turns a hosting-form submission into a storable record.
func prepareCreate(h model.Hackathon, o options) (model.Hackathon, error) {
	out := h.Clone()
	out.ID = o.newID()
	out.Participants = 0
	out.ApplyDefaults(o.now())
	if err := out.Validate(); err != nil {
		return model.Hackathon{}, err
	}
	return out, nil
}

// prepareSeed keeps the record's ID and participant count.
func prepareSeed(h model.Hackathon, o options) (model.Hackathon, error) {
	out := h.Clone()
	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return model.Hackathon{}, fmt.Errorf("%w: seed record %q has no id", model.ErrInvalidHackathon, out.Title)
	}
	out.ApplyDefaults(o.now())
	if err := out.Validate(); err != nil {
		return model.Hackathon{}, fmt.Errorf("seed %s: %w", out.ID, err)
	}
	return out, nil
}

func prepareUpdate(h model.Hackathon, p model.HackathonPatch) (model.Hackathon, error) {
	out := p.Apply(h)
	if err := out.Validate(); err != nil {
		return model.Hackathon{}, err
	}
	return out, nil
}

func notFound(id string) error {
	metrics.RecordErrorByComponent("repository", "not_found")
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func observeQuery(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}

func observeUpdate(start time.Time) {
	metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
}
