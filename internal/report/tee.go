// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"go.uber.org/multierr"

	"github.com/pdiddy/scansplit/pkg/types"
)

// Tee fans rows out to several sinks. Append stops at the first failing
// sink; Close closes all of them and combines their errors.
type Tee []Sink

func (t Tee) Append(row types.ReportRow) error {
	for _, s := range t {
		if err := s.Append(row); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) Close() error {
	var err error
	for _, s := range t {
		err = multierr.Append(err, s.Close())
	}
	return err
}
