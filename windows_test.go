//go:build windows

package systemid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowsPriorityTable(t *testing.T) {
	want := []StrategyInfo{
		{Name: StrategyWindowsMachineGUID, Confidence: ConfidenceHigh},
		{Name: StrategyWMIProductUUID, Confidence: ConfidenceHigh},
		{Name: StrategyWindowsVolumeSerial, Confidence: ConfidenceHigh},
		{Name: StrategyWindowsInstallDate, Confidence: ConfidenceLow},
	}

	assert.Equal(t, want, New().Chain())
}

func TestWindowsStrategyLengths(t *testing.T) {
	wantLen := map[StrategyName]int{
		StrategyWindowsMachineGUID:  16,
		StrategyWMIProductUUID:      16,
		StrategyWindowsVolumeSerial: 4,
		StrategyWindowsInstallDate:  4,
	}

	for _, s := range platformStrategies() {
		t.Run(string(s.name), func(t *testing.T) {
			id, err := s.acquire()
			if err != nil {
				t.Skipf("%s not available: %v", s.name, err)
			}

			assert.Equal(t, wantLen[s.name], id.Len())
			assert.Equal(t, s.confidence, id.Confidence())
		})
	}
}
