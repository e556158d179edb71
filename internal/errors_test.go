package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk gone")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"store", &StoreError{Path: "/db", Op: "open", Err: cause}, []string{"open", "/db"}},
		{"decode", &DecodeError{Container: "ws-1", Key: "k", Err: cause}, []string{"ws-1", "k"}},
		{"record", &RecordError{Container: "ws-1", RecordID: "c1", Err: cause}, []string{"ws-1", "c1"}},
		{"export", &ExportError{Format: "json", Path: "/out", Err: cause}, []string{"json", "/out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, cause) {
				t.Error("cause not reachable through Unwrap")
			}
			for _, part := range tt.want {
				if !strings.Contains(tt.err.Error(), part) {
					t.Errorf("message %q missing %q", tt.err.Error(), part)
				}
			}
		})
	}
}
