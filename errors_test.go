package systemid

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyErrorMessage(t *testing.T) {
	err := &StrategyError{Strategy: StrategyDBusMachineID, Err: ErrMalformed}

	assert.Equal(t, `strategy "dbus-machine-id": malformed identity value`, err.Error())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseErrorMessage(t *testing.T) {
	inner := fmt.Errorf("invalid UUID length: 3")
	err := &ParseError{Source: "/proc/sys/kernel/random/boot_id", Err: inner}

	assert.Equal(t, "failed to parse /proc/sys/kernel/random/boot_id: invalid UUID length: 3", err.Error())
	assert.Same(t, inner, err.Unwrap())
}

func TestNativeCallErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *NativeCallError
		want string
	}{
		{
			name: "with underlying error",
			err:  &NativeCallError{Call: "kenv", Code: 2, Err: errors.New("no such file or directory")},
			want: "native call kenv failed (code 2): no such file or directory",
		},
		{
			name: "return code only",
			err:  &NativeCallError{Call: "IOServiceGetMatchingService", Code: 0},
			want: "native call IOServiceGetMatchingService failed (code 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDeepWrappingChain(t *testing.T) {
	errNoEntry := errors.New("no such entry")
	nativeErr := &NativeCallError{Call: "sysctl kern.hostuuid", Code: 2, Err: errNoEntry}
	stratErr := &StrategyError{Strategy: StrategyBSDKernelHostUUID, Err: nativeErr}
	topErr := fmt.Errorf("resolve: %w", stratErr)

	var gotNative *NativeCallError
	require.ErrorAs(t, topErr, &gotNative)
	assert.Equal(t, "sysctl kern.hostuuid", gotNative.Call)

	var gotStrategy *StrategyError
	require.ErrorAs(t, topErr, &gotStrategy)
	assert.Equal(t, StrategyBSDKernelHostUUID, gotStrategy.Strategy)

	assert.ErrorIs(t, topErr, errNoEntry)
}
