// Package zkteco implements the TCP communication protocol spoken by
// ZKTeco-family fingerprint time clocks (port 4370). Only the subset needed
// to pull the attendance log is implemented: connect handshake, device
// enable/disable, attendance log retrieval and disconnect.
package zkteco

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// Protocol command codes.
const (
	cmdConnect       = 1000
	cmdExit          = 1001
	cmdEnableDevice  = 1002
	cmdDisableDevice = 1003
	cmdAckOK         = 2000
	cmdAckError      = 2001
	cmdAckData       = 2002
	cmdPrepareData   = 1500
	cmdData          = 1501
	cmdFreeData      = 1502
	cmdAttLogRead    = 13
)

// TCP transport magic prefixing every packet.
const (
	tcpMagic1 = 0x5050
	tcpMagic2 = 0x7d82
)

const (
	headerSize = 8 // command, checksum, session, reply (u16 each)
	recordSize = 40
)

var (
	ErrBadMagic     = errors.New("zkteco: bad transport magic")
	ErrShortPacket  = errors.New("zkteco: short packet")
	ErrDeviceError  = errors.New("zkteco: device returned error")
	ErrNotConnected = errors.New("zkteco: not connected")
)

// Punch is a single attendance record as stored on the device.
type Punch struct {
	UserID    string
	Timestamp time.Time
	Status    byte
	Verify    byte
}

// Client is a connection to one device. Not safe for concurrent use; the
// protocol is strictly request/response over one session.
type Client struct {
	conn      net.Conn
	timeout   time.Duration
	sessionID uint16
	replyID   uint16
}

// Dial opens the TCP transport. Connect must be called before any command.
func Dial(ctx context.Context, host string, port int, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		return nil, fmt.Errorf("zkteco: dial %s:%d: %w", host, port, err)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Connect performs the session handshake and captures the session id the
// device assigns.
func (c *Client) Connect() error {
	if c.conn == nil {
		return ErrNotConnected
	}
	c.sessionID = 0
	c.replyID = 0
	reply, err := c.roundTrip(cmdConnect, nil)
	if err != nil {
		return err
	}
	if reply.command != cmdAckOK {
		return fmt.Errorf("%w: connect replied %d", ErrDeviceError, reply.command)
	}
	// The device assigns the session id in its first reply.
	c.sessionID = reply.sessionID
	return nil
}

// EnableDevice re-enables the keypad/scanner after data operations.
func (c *Client) EnableDevice() error {
	return c.simpleCommand(cmdEnableDevice)
}

// DisableDevice locks the keypad/scanner so log reads see a quiesced device.
func (c *Client) DisableDevice() error {
	return c.simpleCommand(cmdDisableDevice)
}

// Disconnect ends the session and closes the transport. Safe to call after a
// failed handshake.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	defer func() {
		c.conn.Close()
		c.conn = nil
	}()
	if c.sessionID != 0 {
		if _, err := c.roundTrip(cmdExit, nil); err != nil {
			return err
		}
	}
	return nil
}

// AttendanceLog reads the full attendance log from the device. The device
// answers either with a small inline data reply or with a prepare-data
// announcement followed by chunked data packets.
func (c *Client) AttendanceLog() ([]Punch, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	reply, err := c.roundTrip(cmdAttLogRead, nil)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch reply.command {
	case cmdAckOK, cmdAckData:
		raw = reply.data
	case cmdPrepareData:
		if len(reply.data) < 4 {
			return nil, ErrShortPacket
		}
		total := binary.LittleEndian.Uint32(reply.data[:4])
		raw, err = c.collectData(int(total))
		if err != nil {
			return nil, err
		}
		// Release the device-side read buffer.
		if _, err := c.roundTrip(cmdFreeData, nil); err != nil {
			return nil, err
		}
	case cmdAckError:
		return nil, fmt.Errorf("%w: attendance log read refused", ErrDeviceError)
	default:
		return nil, fmt.Errorf("%w: unexpected reply %d", ErrDeviceError, reply.command)
	}

	return DecodeAttendanceLog(raw)
}

// collectData accumulates CMD_DATA packets until total bytes arrived, then
// consumes the trailing ACK.
func (c *Client) collectData(total int) ([]byte, error) {
	buf := make([]byte, 0, total)
	for len(buf) < total {
		p, err := c.readPacket()
		if err != nil {
			return nil, err
		}
		switch p.command {
		case cmdData:
			buf = append(buf, p.data...)
		case cmdAckOK:
			// Device finished early; accept what arrived.
			return buf, nil
		case cmdAckError:
			return nil, fmt.Errorf("%w: data transfer aborted", ErrDeviceError)
		default:
			return nil, fmt.Errorf("%w: unexpected packet %d during transfer", ErrDeviceError, p.command)
		}
	}
	// Trailing ACK after the final chunk.
	p, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	if p.command != cmdAckOK {
		return nil, fmt.Errorf("%w: transfer ended with %d", ErrDeviceError, p.command)
	}
	return buf, nil
}

func (c *Client) simpleCommand(cmd uint16) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	reply, err := c.roundTrip(cmd, nil)
	if err != nil {
		return err
	}
	if reply.command != cmdAckOK {
		return fmt.Errorf("%w: command %d replied %d", ErrDeviceError, cmd, reply.command)
	}
	return nil
}

type packet struct {
	command   uint16
	sessionID uint16
	replyID   uint16
	data      []byte
}

func (c *Client) roundTrip(cmd uint16, data []byte) (packet, error) {
	c.replyID++
	out := encodePacket(cmd, c.sessionID, c.replyID, data)

	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return packet{}, err
	}
	if _, err := c.conn.Write(out); err != nil {
		return packet{}, fmt.Errorf("zkteco: write: %w", err)
	}
	return c.readPacket()
}

func (c *Client) readPacket() (packet, error) {
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return packet{}, err
	}

	var transport [8]byte
	if _, err := io.ReadFull(c.conn, transport[:]); err != nil {
		return packet{}, fmt.Errorf("zkteco: read transport header: %w", err)
	}
	if binary.LittleEndian.Uint16(transport[0:2]) != tcpMagic1 ||
		binary.LittleEndian.Uint16(transport[2:4]) != tcpMagic2 {
		return packet{}, ErrBadMagic
	}
	length := binary.LittleEndian.Uint32(transport[4:8])
	if length < headerSize {
		return packet{}, ErrShortPacket
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return packet{}, fmt.Errorf("zkteco: read payload: %w", err)
	}
	return parsePayload(payload)
}

func parsePayload(payload []byte) (packet, error) {
	if len(payload) < headerSize {
		return packet{}, ErrShortPacket
	}
	return packet{
		command:   binary.LittleEndian.Uint16(payload[0:2]),
		sessionID: binary.LittleEndian.Uint16(payload[4:6]),
		replyID:   binary.LittleEndian.Uint16(payload[6:8]),
		data:      payload[headerSize:],
	}, nil
}

// encodePacket frames a command for the TCP transport: magic + length, then
// command header with ones-complement 16-bit checksum, then data.
func encodePacket(cmd, sessionID, replyID uint16, data []byte) []byte {
	payload := make([]byte, headerSize+len(data))
	binary.LittleEndian.PutUint16(payload[0:2], cmd)
	binary.LittleEndian.PutUint16(payload[4:6], sessionID)
	binary.LittleEndian.PutUint16(payload[6:8], replyID)
	copy(payload[headerSize:], data)
	binary.LittleEndian.PutUint16(payload[2:4], checksum(payload))

	out := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint16(out[0:2], tcpMagic1)
	binary.LittleEndian.PutUint16(out[2:4], tcpMagic2)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	copy(out[8:], payload)
	return out
}

// checksum computes the protocol checksum over a payload whose checksum
// field (bytes 2..4) is zero: sum of little-endian 16-bit words with carry
// folding, ones-complemented.
func checksum(payload []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(payload); i += 2 {
		if i == 2 {
			continue // checksum field itself
		}
		sum += uint32(binary.LittleEndian.Uint16(payload[i : i+2]))
	}
	if len(payload)%2 == 1 {
		sum += uint32(payload[len(payload)-1])
	}
	for sum > 0xffff {
		sum = (sum & 0xffff) + (sum >> 16)
	}
	return ^uint16(sum)
}

// DecodeAttendanceLog decodes the raw attendance table. Devices prefix the
// table with a 4-byte total size when it was sent via prepare-data.
func DecodeAttendanceLog(raw []byte) ([]Punch, error) {
	if len(raw) >= 4 && len(raw)%recordSize != 0 && (len(raw)-4)%recordSize == 0 {
		raw = raw[4:]
	}
	if len(raw)%recordSize != 0 {
		return nil, fmt.Errorf("zkteco: attendance table length %d is not a multiple of %d", len(raw), recordSize)
	}

	punches := make([]Punch, 0, len(raw)/recordSize)
	for off := 0; off < len(raw); off += recordSize {
		rec := raw[off : off+recordSize]
		// Record layout: uid u16, user id char[24], status u8, packed time
		// u32, verify u8, reserved [8]byte.
		userID := string(rec[2:26])
		if i := strings.IndexByte(userID, 0); i >= 0 {
			userID = userID[:i]
		}
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		punches = append(punches, Punch{
			UserID:    userID,
			Status:    rec[26],
			Timestamp: decodeTime(binary.LittleEndian.Uint32(rec[27:31])),
			Verify:    rec[31],
		})
	}
	return punches, nil
}

// decodeTime unpacks the device's base-31/base-12 packed timestamp.
func decodeTime(v uint32) time.Time {
	second := int(v % 60)
	v /= 60
	minute := int(v % 60)
	v /= 60
	hour := int(v % 24)
	v /= 24
	day := int(v%31) + 1
	v /= 31
	month := time.Month(v%12) + 1
	v /= 12
	year := int(v) + 2000
	return time.Date(year, month, day, hour, minute, second, 0, time.Local)
}

// encodeTime is the inverse of decodeTime. Exported for fixtures only via
// tests; the service never writes to the device clock.
func encodeTime(t time.Time) uint32 {
	return uint32((((t.Year()-2000)*12+int(t.Month())-1)*31+t.Day()-1)*24*60*60 +
		t.Hour()*3600 + t.Minute()*60 + t.Second())
}
