package board

import (
	"github.com/matzehuels/tileboard/pkg/errors"
)

var errNoImages = errors.New(errors.ErrCodeInternal, "board has no image source")
