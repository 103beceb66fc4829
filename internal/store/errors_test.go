package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

type codedErr int

func (c codedErr) Error() string { return fmt.Sprintf("code %d", int(c)) }
func (c codedErr) Code() int     { return int(c) }

func TestIsQuotaExceeded(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrQuotaExceeded, true},
		{"wrapped sentinel", fmt.Errorf("write: %w", ErrQuotaExceeded), true},
		{"sqlite full", sqlite3.Error{Code: sqlite3.ErrFull}, true},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, false},
		{"redis oom", errors.New("OOM command not allowed when used memory > 'maxmemory'"), true},
		{"browser name", errors.New("QuotaExceededError: the quota has been exceeded"), true},
		{"firefox name", errors.New("NS_ERROR_DOM_QUOTA_REACHED"), true},
		{"code 22", codedErr(22), true},
		{"code 1014", fmt.Errorf("wrapped: %w", codedErr(1014)), true},
		{"other code", codedErr(5), false},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaExceeded(tt.err))
		})
	}
}
