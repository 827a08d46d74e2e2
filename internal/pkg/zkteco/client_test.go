package zkteco

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePacketRoundTrip(t *testing.T) {
	out := encodePacket(cmdConnect, 0xbeef, 7, []byte{0x01, 0x02, 0x03})

	// Transport framing
	assert.Equal(t, uint16(tcpMagic1), binary.LittleEndian.Uint16(out[0:2]))
	assert.Equal(t, uint16(tcpMagic2), binary.LittleEndian.Uint16(out[2:4]))
	assert.Equal(t, uint32(headerSize+3), binary.LittleEndian.Uint32(out[4:8]))

	p, err := parsePayload(out[8:])
	require.NoError(t, err)
	assert.Equal(t, uint16(cmdConnect), p.command)
	assert.Equal(t, uint16(0xbeef), p.sessionID)
	assert.Equal(t, uint16(7), p.replyID)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, p.data)
}

func TestChecksumExcludesItsOwnField(t *testing.T) {
	a := encodePacket(cmdExit, 1, 1, nil)
	sum := binary.LittleEndian.Uint16(a[10:12])

	// Recomputing over the payload (checksum field skipped) must agree.
	assert.Equal(t, sum, checksum(a[8:]))

	// Flipping a data byte must change the checksum.
	b := encodePacket(cmdExit, 1, 2, nil)
	assert.NotEqual(t, sum, binary.LittleEndian.Uint16(b[10:12]))
}

func TestChecksumOddLength(t *testing.T) {
	payload := make([]byte, headerSize+1)
	payload[headerSize] = 0x7f
	// Must not panic and must account for the trailing byte.
	withTail := checksum(payload)
	payload[headerSize] = 0x00
	withoutTail := checksum(payload)
	assert.NotEqual(t, withTail, withoutTail)
}

func TestTimeCodecRoundTrip(t *testing.T) {
	cases := []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local),
		time.Date(2026, 8, 31, 7, 45, 12, 0, time.Local),
	}
	for _, want := range cases {
		got := decodeTime(encodeTime(want))
		assert.True(t, got.Equal(want), "want %s got %s", want, got)
	}
}

func makeRecord(userID string, ts time.Time, status, verify byte) []byte {
	rec := make([]byte, recordSize)
	copy(rec[2:26], userID)
	rec[26] = status
	binary.LittleEndian.PutUint32(rec[27:31], encodeTime(ts))
	rec[31] = verify
	return rec
}

func TestDecodeAttendanceLog(t *testing.T) {
	ts1 := time.Date(2026, 8, 3, 8, 1, 0, 0, time.Local)
	ts2 := time.Date(2026, 8, 3, 17, 2, 30, 0, time.Local)

	raw := append(makeRecord("1001", ts1, 0, 1), makeRecord("1002", ts2, 1, 15)...)

	punches, err := DecodeAttendanceLog(raw)
	require.NoError(t, err)
	require.Len(t, punches, 2)

	assert.Equal(t, "1001", punches[0].UserID)
	assert.True(t, punches[0].Timestamp.Equal(ts1))
	assert.Equal(t, byte(0), punches[0].Status)

	assert.Equal(t, "1002", punches[1].UserID)
	assert.True(t, punches[1].Timestamp.Equal(ts2))
	assert.Equal(t, byte(15), punches[1].Verify)
}

func TestDecodeAttendanceLogSizePrefix(t *testing.T) {
	ts := time.Date(2026, 1, 15, 6, 30, 0, 0, time.Local)
	rec := makeRecord("77", ts, 0, 1)

	prefixed := make([]byte, 4+len(rec))
	binary.LittleEndian.PutUint32(prefixed[0:4], uint32(len(rec)))
	copy(prefixed[4:], rec)

	punches, err := DecodeAttendanceLog(prefixed)
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "77", punches[0].UserID)
}

func TestDecodeAttendanceLogSkipsBlankRecords(t *testing.T) {
	blank := make([]byte, recordSize)
	raw := append(blank, makeRecord("5", time.Date(2026, 5, 5, 5, 5, 5, 0, time.Local), 0, 1)...)

	punches, err := DecodeAttendanceLog(raw)
	require.NoError(t, err)
	require.Len(t, punches, 1)
	assert.Equal(t, "5", punches[0].UserID)
}

func TestDecodeAttendanceLogRejectsTornTable(t *testing.T) {
	_, err := DecodeAttendanceLog(make([]byte, recordSize+7))
	assert.Error(t, err)
}
