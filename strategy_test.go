package systemid

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBusMachineIDStrategy(t *testing.T) {
	path := writeFile(t, "machine-id", "d41d8cd98f00b204e9800998ecf8427e\n")

	s := dbusMachineIDStrategy([]string{path})
	assert.Equal(t, StrategyDBusMachineID, s.name)
	assert.Equal(t, ConfidenceHigh, s.confidence)

	id, err := s.acquire()
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", id.String())
	assert.Equal(t, 16, id.Len())
	assert.True(t, id.HighConfidence())
}

func TestMachineIDFromFilesFallsThrough(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	malformed := writeFile(t, "malformed", "not a machine id\n")
	valid := writeFile(t, "valid", "0123456789abcdef0123456789abcdef")

	id, err := machineIDFromFiles([]string{missing, malformed, valid})
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", id.String())
}

func TestMachineIDFromFilesFirstValidWins(t *testing.T) {
	first := writeFile(t, "first", "11111111111111111111111111111111\n")
	second := writeFile(t, "second", "22222222222222222222222222222222\n")

	id, err := machineIDFromFiles([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, "11111111111111111111111111111111", id.String())
}

func TestMachineIDFromFilesNoResult(t *testing.T) {
	t.Run("nothing readable", func(t *testing.T) {
		_, err := machineIDFromFiles([]string{filepath.Join(t.TempDir(), "missing")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("only malformed", func(t *testing.T) {
		_, err := machineIDFromFiles([]string{writeFile(t, "bad", "d41d8cd98f00b204e9800998ecf8427\n")})
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("oversized file is truncated and rejected", func(t *testing.T) {
		path := writeFile(t, "huge", "d41d8cd98f00b204e9800998ecf8427e0000000000000000000000")
		_, err := machineIDFromFiles([]string{path})
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("no paths", func(t *testing.T) {
		_, err := machineIDFromFiles(nil)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestUUIDFileStrategy(t *testing.T) {
	path := writeFile(t, "boot_id", "6f1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d\n")

	tests := []struct {
		name       string
		strategy   strategy
		confidence Confidence
	}{
		{"boot id is low confidence", uuidFileStrategy(StrategyLinuxBootID, path, ConfidenceLow), ConfidenceLow},
		{"dmi product uuid is high confidence", uuidFileStrategy(StrategyDMIProductUUID, path, ConfidenceHigh), ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.strategy.acquire()
			require.NoError(t, err)
			assert.Equal(t, "6f1b2c3d4e5f4a6b8c7d9e0f1a2b3c4d", id.String())
			assert.Equal(t, tt.confidence, id.Confidence())
			assert.Equal(t, tt.confidence, tt.strategy.confidence)
		})
	}
}

func TestUUIDFileStrategyRejectsMalformed(t *testing.T) {
	path := writeFile(t, "product_uuid", "Not Settable\n")

	_, err := uuidFileStrategy(StrategyDMIProductUUID, path, ConfidenceHigh).acquire()
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = uuidFileStrategy(StrategyDMIProductUUID, filepath.Join(t.TempDir(), "absent"), ConfidenceHigh).acquire()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUdevSerialsStrategy(t *testing.T) {
	path := writeFile(t, "+dmi:id", "E:ID_SERIAL_NUMBER=AAA\n")

	s := udevSerialsStrategy(path)
	assert.Equal(t, StrategyUdevDMISerials, s.name)

	id, err := s.acquire()
	require.NoError(t, err)
	assert.Equal(t, digestOf("AAA"), id.Bytes())
}

func TestHostIDFromFile(t *testing.T) {
	t.Run("native-endian record", func(t *testing.T) {
		record := binary.NativeEndian.AppendUint32(nil, 0x007f0101)
		path := writeFile(t, "hostid", string(record))

		id, err := hostIDFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "00000000007f0101", id.String())
		assert.Equal(t, ConfidenceLow, id.Confidence())
	})

	t.Run("short record", func(t *testing.T) {
		_, err := hostIDFromFile(writeFile(t, "hostid", "ab"))

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})
}

func TestIDFromHostIDSignExtends(t *testing.T) {
	assert.Equal(t, "ffffffff80000000", idFromHostID(-0x80000000).String())
	assert.Equal(t, "0000000000000001", idFromHostID(1).String())
	assert.Equal(t, 8, idFromHostID(0).Len())
}
