package builder

import "github.com/nswarm/apyxl/model"

// Config controls Builder.Build.
type Config struct {
	// PreValidationPrint, if set, emits a debug rendering of the
	// merged namespace tree (via (*model.Namespace).Dump) through the
	// configured logger before validation runs.
	PreValidationPrint bool `json:"pre_validation_print"`

	// UserTypes are the user-type declarations type qualification
	// treats as already valid, keyed by their semantic Name.
	UserTypes []model.UserType `json:"user_types"`
}
