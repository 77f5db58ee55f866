package codec

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/flightlink/msp/protocol/schema"
)

func descriptor(t *testing.T, code uint8) schema.Descriptor {
	t.Helper()
	d, ok := schema.Lookup(code)
	if !ok {
		t.Fatalf("command %d not registered", code)
	}
	return d
}

func TestDecodeIdent(t *testing.T) {
	d := descriptor(t, schema.CmdIdent)
	rec, err := Decode(d, []byte{0x17, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Int("version") != 0x17 {
		t.Fatalf("version: got %d want 23", rec.Int("version"))
	}
	if rec.Int("multitype") != 3 {
		t.Fatalf("multitype: got %d want 3", rec.Int("multitype"))
	}
	if rec.Int("capability") != 0 {
		t.Fatalf("capability: got %d", rec.Int("capability"))
	}
}

func TestDecodeSignedLittleEndian(t *testing.T) {
	d := descriptor(t, schema.CmdAttitude)
	// angx = -10 (0xFFF6), angy = 300 (0x012C), heading = -180
	rec, err := Decode(d, []byte{0xF6, 0xFF, 0x2C, 0x01, 0x4C, 0xFF})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Int("angx") != -10 || rec.Int("angy") != 300 || rec.Int("heading") != -180 {
		t.Fatalf("unexpected values: %d %d %d", rec.Int("angx"), rec.Int("angy"), rec.Int("heading"))
	}
}

func TestDecodeNegativeS32(t *testing.T) {
	d := descriptor(t, schema.CmdAltitude)
	// est_alt = -250 cm, vario = -5 cm/s
	raw := []byte{0x06, 0xFF, 0xFF, 0xFF, 0xFB, 0xFF}
	rec, err := Decode(d, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Int("est_alt") != -250 || rec.Int("vario") != -5 {
		t.Fatalf("unexpected values: %d %d", rec.Int("est_alt"), rec.Int("vario"))
	}
}

func TestDecodeVariableArray(t *testing.T) {
	d := descriptor(t, schema.CmdRC)
	raw := []byte{0xDC, 0x05, 0xE8, 0x03, 0xD0, 0x07, 0xDC, 0x05}
	rec, err := Decode(d, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []int64{1500, 1000, 2000, 1500}
	if !reflect.DeepEqual(rec.Ints("channels"), want) {
		t.Fatalf("channels: got %v want %v", rec.Ints("channels"), want)
	}
}

func TestDecodeVariableArrayOddLength(t *testing.T) {
	d := descriptor(t, schema.CmdRC)
	_, err := Decode(d, []byte{0xDC, 0x05, 0xE8})
	if !errors.Is(err, ErrPayloadLength) {
		t.Fatalf("expected ErrPayloadLength, got %v", err)
	}
}

func TestDecodeShortFixedPayload(t *testing.T) {
	d := descriptor(t, schema.CmdIdent)
	_, err := Decode(d, []byte{0x17, 0x03})
	if !errors.Is(err, ErrPayloadLength) {
		t.Fatalf("expected ErrPayloadLength, got %v", err)
	}
}

func TestDecodeTrailingBytesRejected(t *testing.T) {
	d := descriptor(t, schema.CmdAttitude)
	_, err := Decode(d, []byte{0, 0, 0, 0, 0, 0, 0xAB})
	if !errors.Is(err, ErrPayloadLength) {
		t.Fatalf("expected ErrPayloadLength, got %v", err)
	}
}

func TestDecodeEmptyLayoutRejectsPayload(t *testing.T) {
	d := descriptor(t, schema.CmdAccCalibration)
	if _, err := Decode(d, nil); err != nil {
		t.Fatalf("empty payload against empty layout: %v", err)
	}
	if _, err := Decode(d, []byte{0x01}); !errors.Is(err, ErrPayloadLength) {
		t.Fatalf("expected ErrPayloadLength, got %v", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		code uint8
		rec  *Record
	}{
		{schema.CmdSetHead, NewRecord().Set("heading", -90)},
		{schema.CmdSelectSetting, NewRecord().Set("setting", 2)},
		{schema.CmdSetRawRC, NewRecord().Set("channels", 1500, 1500, 1000, 2000, 1100, 1200, 1300, 1400)},
		{schema.CmdSetRawGPS, NewRecord().
			Set("fix", 1).
			Set("num_sat", 9).
			Set("latitude", -337_700_000).
			Set("longitude", 1_510_000_000).
			Set("altitude", 120).
			Set("speed", 350)},
		{schema.CmdSetRCTuning, NewRecord().
			Set("rc_rate", 90).
			Set("rc_expo", 65).
			Set("roll_pitch_rate", 0).
			Set("yaw_rate", 0).
			Set("dyn_thr_pid", 0).
			Set("throttle_mid", 50).
			Set("throttle_expo", 0)},
	}
	for _, c := range cases {
		d := descriptor(t, c.code)
		raw, err := Encode(d, c.rec)
		if err != nil {
			t.Fatalf("%s: encode: %v", d.Name, err)
		}
		back, err := Decode(d, raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", d.Name, err)
		}
		if !reflect.DeepEqual(back.values, c.rec.values) {
			t.Fatalf("%s: round trip mismatch:\nin=%v\nout=%v", d.Name, c.rec.values, back.values)
		}
	}
}

func TestEncodeEmptyLayout(t *testing.T) {
	d := descriptor(t, schema.CmdEepromWrite)
	raw, err := Encode(d, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected empty payload, got % x", raw)
	}
}

func TestEncodeMissingField(t *testing.T) {
	d := descriptor(t, schema.CmdSetHead)
	_, err := Encode(d, NewRecord())
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestEncodeWrongCount(t *testing.T) {
	d := descriptor(t, schema.CmdSetPID)
	_, err := Encode(d, NewRecord().Set("pids", 1, 2, 3))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestEncodeValueOverflow(t *testing.T) {
	d := descriptor(t, schema.CmdSelectSetting)
	_, err := Encode(d, NewRecord().Set("setting", 300))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	d = descriptor(t, schema.CmdSetHead)
	_, err = Encode(d, NewRecord().Set("heading", 40_000))
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch for signed overflow, got %v", err)
	}
}

func TestEncodePayloadTooLarge(t *testing.T) {
	d := descriptor(t, schema.CmdSetRawRC)
	vals := make([]int64, 130) // 260 bytes of u16
	rec := NewRecord().Set("channels", vals...)
	_, err := Encode(d, rec)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestRecordBytes(t *testing.T) {
	d := descriptor(t, schema.CmdBoxNames)
	rec, err := Decode(d, []byte("ARM;ANGLE;"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(rec.Bytes("names"), []byte("ARM;ANGLE;")) {
		t.Fatalf("names bytes mismatch: %q", rec.Bytes("names"))
	}
}
