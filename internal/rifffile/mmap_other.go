//go:build !unix

package rifffile

import (
	"errors"
	"os"
)

func mmapFile(*os.File, int64) ([]byte, error) {
	return nil, errors.ErrUnsupported
}

func munmap([]byte) error { return nil }
