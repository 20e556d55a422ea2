package browser

import (
	"os"
	"testing"

	"github.com/grovetools/ccsessions/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunIsolated(m))
}
