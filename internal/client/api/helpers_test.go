package api

import (
	"io"
	"log/slog"

	"github.com/dmitrijs2005/umsclient/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
