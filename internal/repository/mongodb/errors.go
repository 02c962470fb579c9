// Package mongodb implements the repository contracts on MongoDB.
package mongodb

import (
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"notekeeper/backend/internal/errs"
)

// translate maps driver errors onto the shared sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, errs.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// containsFold builds a case-insensitive substring match on any of fields.
func containsFold(query string, fields ...string) bson.A {
	pattern := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return or
}
