package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoReportsCallerFile(t *testing.T) {
	var buf bytes.Buffer
	saved := InfoLogger
	InfoLogger = log.New(&buf, "INFO: ", log.Lshortfile)
	defer func() { InfoLogger = saved }()

	Info("post %s approved", "p1")

	assert.Contains(t, buf.String(), "logger_test.go:")
	assert.Contains(t, buf.String(), "post p1 approved")
}
