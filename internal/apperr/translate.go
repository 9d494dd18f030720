package apperr

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-microblog-api/internal/domain"
)

// FromStorage translates a structured storage failure into the taxonomy.
// entity is the client-facing entity name ("User", "Post"). Errors that are
// not a *domain.StorageError, or carry an unhandled code, are logged and
// returned unchanged so the responder renders them as a generic 500.
func FromStorage(log *zap.Logger, entity string, err error) error {
	var se *domain.StorageError
	if !errors.As(err, &se) {
		log.Error("unclassified storage error", zap.String("entity", entity), zap.Error(err))
		return err
	}

	switch se.Code {
	case domain.StorageUniqueViolation:
		return Mutation(
			fmt.Sprintf("%s cannot be created with given input data.", entity),
			[]Entry{{
				Msg:   fmt.Sprintf("%s input contains duplicate identifiers.", entity),
				Type:  "field",
				Value: se.FieldList(),
			}},
		)
	case domain.StorageForeignKeyViolation:
		e := Mutation(
			"Post cannot be created as it would violate a foreign key constraint, i.e. associated User does not exist.",
			[]Entry{{
				Msg:   "User is not authorized to perform this action.",
				Type:  "field",
				Value: "userId",
			}},
		)
		e.foreignKey = true
		return e
	case domain.StorageNotFound:
		return NotFound(
			fmt.Sprintf("Can't find %s to update or delete.", entity),
			[]Entry{{Msg: fmt.Sprintf("%s does not exist.", entity)}},
		)
	}

	log.Error("unclassified storage error",
		zap.String("entity", entity),
		zap.String("code", string(se.Code)),
		zap.Error(err),
	)
	return err
}
