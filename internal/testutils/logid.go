package testutils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type logline struct {
	LogID *utils.LogID `json:"log_id"`
}

func AssertLogsPresent(t *testing.T, logs []byte, expectedIDs []utils.LogID) {
	t.Helper()
	if len(expectedIDs) == 0 {
		return
	}

	text := string(logs)
	lines := strings.Split(text, "\n")
	seenIDs := []utils.LogID{}
	for _, line := range lines {
		var m logline
		err := json.Unmarshal([]byte(line), &m)
		if err != nil {
			continue
		}
		if m.LogID != nil {
			seenIDs = append(seenIDs, *m.LogID)
		}
	}
	assert.Equal(t, expectedIDs, seenIDs, "seen logs ids should match")
}

// CaptureJSONLogs routes logrus through the JSON formatter into the returned
// buffer until the test ends.
func CaptureJSONLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	previousOut := logrus.StandardLogger().Out
	previousFormatter := logrus.StandardLogger().Formatter

	logrus.SetOutput(buf)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() {
		logrus.SetOutput(previousOut)
		logrus.SetFormatter(previousFormatter)
	})
	return buf
}
