package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/open-dio/opendio/pkg/logger"
)

// NewBuildID returns a fresh model build identifier, e.g. "bld_V1StGXR8_Z5j".
func NewBuildID() string {
	id, err := gonanoid.New(12)
	if err != nil {
		// gonanoid only fails when the OS entropy source is broken.
		logger.Fatal("Failed to generate build id", "err", err)
	}
	return "bld_" + id
}
