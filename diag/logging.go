// Copyright 2016 The Neudiff Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"log"
	"os"

	"github.com/cpmech/gosl/io"
)

// Logger writes one log file per rank, the same layout
// inp/logging.go used for FEM simulations: "<dirout>/<key>_p<rank>.log".
type Logger struct {
	file *os.File
}

// NewLogger creates (or truncates) the log file for this rank.
func NewLogger(dirout, key string, rank int) (*Logger, error) {
	f, err := os.Create(io.Sf("%s/%s_p%d.log", dirout, key, rank))
	if err != nil {
		return nil, Err(IOFailure, "cannot create log file in %q: %v", dirout, err)
	}
	log.SetOutput(f)
	return &Logger{file: f}, nil
}

// Close flushes and closes the log file. Safe to call on a nil Logger.
func (l *Logger) Close() {
	if l == nil || l.file == nil {
		return
	}
	l.file.Close()
}

// LogErr logs err (if non-nil) with msg as context and reports whether
// the caller should stop, mirroring inp.LogErr.
func (l *Logger) LogErr(err error, msg string) (stop bool) {
	if err != nil {
		log.Printf("ERROR: %s: %v", msg, err)
		return true
	}
	return false
}
