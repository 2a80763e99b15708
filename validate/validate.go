// Package validate implements the ordered validation passes: Shape,
// Duplicates, Stamping, Type qualification, and Alias acyclicity.
// Every pass always runs, even once earlier passes have produced
// errors, so a single Build reports every problem at once instead of
// stopping at the first failure.
package validate

import (
	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
)

// Config controls validation, mirroring builder config
// user_types entry.
type Config struct {
	UserTypes []model.UserType
}

// Validate runs every pass over m.Root and, on success, leaves m fully
// stamped and qualified in place. It returns nil on success, or an
// apyxlerr.List (which implements error) listing every problem found,
// sorted deterministically.
func Validate(m *model.Model, cfg Config) error {
	var errs apyxlerr.List

	shape(m.Root, model.RootId(), &errs)
	duplicates(m.Root, &errs)
	stamp(m.Root, model.RootId())

	userTypes := model.Names(cfg.UserTypes)
	qualifyTypes(m, m.Root, &errs, userTypes)
	aliasAcyclicity(m, &errs)

	errs.SortDeterministic()
	return errs.AsError()
}
