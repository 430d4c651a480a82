package validation

import "github.com/dmitrijs2005/taskboard/internal/models"

var (
	FullName = StringRule{
		Field: "full_name", Trim: true, Min: 2, Max: 100,
		MinMsg: "Name must be at least 2 characters",
		MaxMsg: "Name must be less than 100 characters",
	}
	Bio = StringRule{
		Field: "bio", Max: 500,
		MaxMsg: "Bio must be less than 500 characters",
	}
)

// Profile validates a profile patch.
func Profile(p models.ProfilePatch) Errors {
	var errs Errors
	errs.add(FullName.Check(p.FullName))
	errs.add(Bio.Check(p.Bio))
	return errs
}
