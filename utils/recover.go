package utils

import (
	"fmt"

	"github.com/servertools/servertools/locale"
	"github.com/sirupsen/logrus"
)

var ErrorHandler = func(err error) {
	logrus.WithError(err).Error(locale.Loc("fatal_error", nil))
}

// RecoverCall runs f and turns a panic inside it into an error.
func RecoverCall(f func() error) (err error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case error:
			err = r
		default:
			err = fmt.Errorf("%v", r)
		}
	}()
	err = f()
	return
}
