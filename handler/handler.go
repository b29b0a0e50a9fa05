package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"relay/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
