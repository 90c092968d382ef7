package testing

import (
	"os"
	"path"
	"runtime"
	"time"
)

func init() {
	// cd to the root of the module so logs/ and .env resolve the same way in
	// every package under test
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/eldercare-telemetry/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

// MustTime parses an RFC3339 literal used in fixtures, the result is UTC.
func MustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
