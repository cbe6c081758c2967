package domain

import (
	"github.com/allisson/guardpost/internal/errors"
)

// ErrArticleNotFound indicates an article with the specified ID was not found.
var ErrArticleNotFound = errors.Wrap(errors.ErrNotFound, "article not found")
