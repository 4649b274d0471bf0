package memstore

import (
	"context"
	"time"

	"kuponbot/internal/usecase/shared"
)

type markerRepo struct{ t *tx }

func (r markerRepo) Exists(_ context.Context, m shared.Marker) (bool, error) {
	d, done := r.t.open()
	defer done()

	_, ok := d.markers[m]
	return ok, nil
}

func (r markerRepo) Mark(_ context.Context, m shared.Marker, at time.Time) error {
	d, done := r.t.open()
	defer done()

	if _, ok := d.markers[m]; !ok {
		d.markers[m] = at
	}
	return nil
}
