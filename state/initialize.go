package state

import (
	"time"

	"github.com/google/uuid"

	"cssel/common"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		RunID:  uuid.New(),
		Output: common.OutputFmtText,
	}
}
