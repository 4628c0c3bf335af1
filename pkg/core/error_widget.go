package core

import (
	"sync"

	"github.com/go-drift/carousel/pkg/errors"
)

// ErrorWidgetBuilder turns a failed build into a replacement widget. The
// replacement occupies the failed widget's slot, so a broken card body shows
// a fallback instead of tearing down the whole strip.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorBuilderMu     sync.RWMutex
	errorWidgetBuilder ErrorWidgetBuilder = DefaultErrorWidgetBuilder
)

// SetErrorWidgetBuilder installs the builder used for failed builds. A nil
// argument restores [DefaultErrorWidgetBuilder].
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	if builder == nil {
		builder = DefaultErrorWidgetBuilder
	}
	errorWidgetBuilder = builder
}

// GetErrorWidgetBuilder returns the installed builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}

// DefaultErrorWidgetBuilder returns nil, leaving the failed slot blank.
func DefaultErrorWidgetBuilder(err *errors.BuildError) Widget {
	return nil
}
