package multiwii

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/flightlink/msp/protocol/codec"
	"github.com/flightlink/msp/protocol/schema"
	"github.com/flightlink/msp/session"
	"github.com/flightlink/msp/transport"
)

// Unit conversion factors between wire integers and typed values.
const (
	coordScale = 1e7 // 1e-7 degree GPS fixpoint
	deciScale  = 10  // decidegrees, decivolts
)

// Client exposes one named operation per MSP command over a session.
type Client struct {
	s *session.Session
}

// NewClient builds a client around port. The session starts closed;
// call Open before issuing commands.
func NewClient(port transport.Port, cfg session.Config) *Client {
	return &Client{s: session.New(port, cfg)}
}

// Open readies the underlying session. Idempotent.
func (c *Client) Open() error { return c.s.Open() }

// Close releases the transport. Idempotent.
func (c *Client) Close() error { return c.s.Close() }

func (c *Client) get(ctx context.Context, code uint8) (*codec.Record, error) {
	return c.s.Request(ctx, code, nil)
}

// Ident queries MSP_IDENT.
func (c *Client) Ident(ctx context.Context) (Ident, error) {
	rec, err := c.get(ctx, schema.CmdIdent)
	if err != nil {
		return Ident{}, err
	}
	multitype, err := ParseMultitype(rec.Int("multitype"))
	if err != nil {
		return Ident{}, err
	}
	return Ident{
		Version:    uint8(rec.Int("version")),
		Multitype:  multitype,
		MSPVersion: uint8(rec.Int("msp_version")),
		Capability: uint32(rec.Int("capability")),
	}, nil
}

// Status queries MSP_STATUS.
func (c *Client) Status(ctx context.Context) (Status, error) {
	rec, err := c.get(ctx, schema.CmdStatus)
	if err != nil {
		return Status{}, err
	}
	return Status{
		CycleTime: uint16(rec.Int("cycle_time")),
		I2CErrors: uint16(rec.Int("i2c_errors")),
		Sensors:   uint16(rec.Int("sensors")),
		Flags:     uint32(rec.Int("flags")),
		Setting:   uint8(rec.Int("setting")),
	}, nil
}

// RawIMU queries MSP_RAW_IMU.
func (c *Client) RawIMU(ctx context.Context) (RawIMU, error) {
	rec, err := c.get(ctx, schema.CmdRawIMU)
	if err != nil {
		return RawIMU{}, err
	}
	var imu RawIMU
	for i, v := range rec.Ints("acc") {
		imu.Acc[i] = int16(v)
	}
	for i, v := range rec.Ints("gyro") {
		imu.Gyro[i] = int16(v)
	}
	for i, v := range rec.Ints("mag") {
		imu.Mag[i] = int16(v)
	}
	return imu, nil
}

// Servo queries MSP_SERVO and returns the pulse widths in microseconds.
func (c *Client) Servo(ctx context.Context) ([]uint16, error) {
	rec, err := c.get(ctx, schema.CmdServo)
	if err != nil {
		return nil, err
	}
	return toUint16s(rec.Ints("servos")), nil
}

// Motor queries MSP_MOTOR.
func (c *Client) Motor(ctx context.Context) ([]uint16, error) {
	rec, err := c.get(ctx, schema.CmdMotor)
	if err != nil {
		return nil, err
	}
	return toUint16s(rec.Ints("motors")), nil
}

// RawRC queries MSP_RC and returns one value per bound channel.
func (c *Client) RawRC(ctx context.Context) ([]uint16, error) {
	rec, err := c.get(ctx, schema.CmdRC)
	if err != nil {
		return nil, err
	}
	return toUint16s(rec.Ints("channels")), nil
}

// RawGPS queries MSP_RAW_GPS.
func (c *Client) RawGPS(ctx context.Context) (RawGPS, error) {
	rec, err := c.get(ctx, schema.CmdRawGPS)
	if err != nil {
		return RawGPS{}, err
	}
	return RawGPS{
		Fix:          rec.Int("fix") != 0,
		NumSat:       uint8(rec.Int("num_sat")),
		Latitude:     float64(rec.Int("latitude")) / coordScale,
		Longitude:    float64(rec.Int("longitude")) / coordScale,
		Altitude:     uint16(rec.Int("altitude")),
		Speed:        uint16(rec.Int("speed")),
		GroundCourse: float64(rec.Int("ground_course")) / deciScale,
	}, nil
}

// CompGPS queries MSP_COMP_GPS.
func (c *Client) CompGPS(ctx context.Context) (CompGPS, error) {
	rec, err := c.get(ctx, schema.CmdCompGPS)
	if err != nil {
		return CompGPS{}, err
	}
	return CompGPS{
		DistanceToHome:  uint16(rec.Int("distance_to_home")),
		DirectionToHome: uint16(rec.Int("direction_to_home")),
		Update:          uint8(rec.Int("update")),
	}, nil
}

// Attitude queries MSP_ATTITUDE.
func (c *Client) Attitude(ctx context.Context) (Attitude, error) {
	rec, err := c.get(ctx, schema.CmdAttitude)
	if err != nil {
		return Attitude{}, err
	}
	return Attitude{
		Roll:    float64(rec.Int("angx")) / deciScale,
		Pitch:   float64(rec.Int("angy")) / deciScale,
		Heading: float64(rec.Int("heading")),
	}, nil
}

// Altitude queries MSP_ALTITUDE.
func (c *Client) Altitude(ctx context.Context) (Altitude, error) {
	rec, err := c.get(ctx, schema.CmdAltitude)
	if err != nil {
		return Altitude{}, err
	}
	return Altitude{
		EstimatedAlt: int32(rec.Int("est_alt")),
		Vario:        int16(rec.Int("vario")),
	}, nil
}

// Analog queries MSP_ANALOG.
func (c *Client) Analog(ctx context.Context) (Analog, error) {
	rec, err := c.get(ctx, schema.CmdAnalog)
	if err != nil {
		return Analog{}, err
	}
	return Analog{
		VBat:          float64(rec.Int("vbat")) / deciScale,
		PowerMeterSum: uint16(rec.Int("power_meter_sum")),
		RSSI:          uint16(rec.Int("rssi")),
		Amperage:      uint16(rec.Int("amperage")),
	}, nil
}

// RCTuning queries MSP_RC_TUNING.
func (c *Client) RCTuning(ctx context.Context) (RCTuning, error) {
	rec, err := c.get(ctx, schema.CmdRCTuning)
	if err != nil {
		return RCTuning{}, err
	}
	return rcTuningFromRecord(rec), nil
}

// PID queries MSP_PID and returns the ten gain triplets.
func (c *Client) PID(ctx context.Context) ([PIDCount]PIDTerms, error) {
	var out [PIDCount]PIDTerms
	rec, err := c.get(ctx, schema.CmdPID)
	if err != nil {
		return out, err
	}
	raw := rec.Ints("pids")
	for i := 0; i < PIDCount; i++ {
		out[i] = PIDTerms{
			P: uint8(raw[i*3]),
			I: uint8(raw[i*3+1]),
			D: uint8(raw[i*3+2]),
		}
	}
	return out, nil
}

// Box queries MSP_BOX and returns the raw aux activation bitmasks.
func (c *Client) Box(ctx context.Context) ([]uint16, error) {
	rec, err := c.get(ctx, schema.CmdBox)
	if err != nil {
		return nil, err
	}
	return toUint16s(rec.Ints("boxes")), nil
}

// BoxNames queries MSP_BOXNAMES.
func (c *Client) BoxNames(ctx context.Context) ([]string, error) {
	rec, err := c.get(ctx, schema.CmdBoxNames)
	if err != nil {
		return nil, err
	}
	return splitNames(rec.Bytes("names")), nil
}

// PIDNames queries MSP_PIDNAMES.
func (c *Client) PIDNames(ctx context.Context) ([]string, error) {
	rec, err := c.get(ctx, schema.CmdPIDNames)
	if err != nil {
		return nil, err
	}
	return splitNames(rec.Bytes("names")), nil
}

// BoxIDs queries MSP_BOXIDS and validates every reported identifier.
func (c *Client) BoxIDs(ctx context.Context) ([]Box, error) {
	rec, err := c.get(ctx, schema.CmdBoxIDs)
	if err != nil {
		return nil, err
	}
	raw := rec.Ints("ids")
	out := make([]Box, len(raw))
	for i, v := range raw {
		box, err := ParseBox(v)
		if err != nil {
			return nil, err
		}
		out[i] = box
	}
	return out, nil
}

// Misc queries MSP_MISC.
func (c *Client) Misc(ctx context.Context) (Misc, error) {
	rec, err := c.get(ctx, schema.CmdMisc)
	if err != nil {
		return Misc{}, err
	}
	return Misc{
		PowerTrigger:     uint16(rec.Int("power_trigger")),
		MinThrottle:      uint16(rec.Int("min_throttle")),
		MaxThrottle:      uint16(rec.Int("max_throttle")),
		MinCommand:       uint16(rec.Int("min_command")),
		FailsafeThrottle: uint16(rec.Int("failsafe_throttle")),
		ArmCount:         uint16(rec.Int("arm_count")),
		Lifetime:         uint32(rec.Int("lifetime")),
		MagDeclination:   float64(rec.Int("mag_declination")) / deciScale,
		VBatScale:        uint8(rec.Int("vbat_scale")),
		VBatWarn1:        uint8(rec.Int("vbat_warn1")),
		VBatWarn2:        uint8(rec.Int("vbat_warn2")),
		VBatCrit:         uint8(rec.Int("vbat_crit")),
	}, nil
}

// MotorPins queries MSP_MOTOR_PINS.
func (c *Client) MotorPins(ctx context.Context) ([8]uint8, error) {
	var pins [8]uint8
	rec, err := c.get(ctx, schema.CmdMotorPins)
	if err != nil {
		return pins, err
	}
	for i, v := range rec.Ints("pins") {
		pins[i] = uint8(v)
	}
	return pins, nil
}

// SetRawRC writes MSP_SET_RAW_RC with one value per channel.
func (c *Client) SetRawRC(ctx context.Context, channels []uint16) error {
	rec := codec.NewRecord().Set("channels", fromUint16s(channels)...)
	_, err := c.s.Request(ctx, schema.CmdSetRawRC, rec)
	return err
}

// SetRawGPS writes MSP_SET_RAW_GPS (GPS injection for boards without a
// receiver of their own).
func (c *Client) SetRawGPS(ctx context.Context, fix bool, numSat uint8, lat, lon float64, altitude, speed uint16) error {
	fixVal := int64(0)
	if fix {
		fixVal = 1
	}
	rec := codec.NewRecord().
		Set("fix", fixVal).
		Set("num_sat", int64(numSat)).
		Set("latitude", int64(math.Round(lat*coordScale))).
		Set("longitude", int64(math.Round(lon*coordScale))).
		Set("altitude", int64(altitude)).
		Set("speed", int64(speed))
	_, err := c.s.Request(ctx, schema.CmdSetRawGPS, rec)
	return err
}

// SetPID writes MSP_SET_PID.
func (c *Client) SetPID(ctx context.Context, pids [PIDCount]PIDTerms) error {
	vals := make([]int64, 0, PIDCount*3)
	for _, p := range pids {
		vals = append(vals, int64(p.P), int64(p.I), int64(p.D))
	}
	rec := codec.NewRecord().Set("pids", vals...)
	_, err := c.s.Request(ctx, schema.CmdSetPID, rec)
	return err
}

// SetBox writes MSP_SET_BOX with one activation bitmask per box.
func (c *Client) SetBox(ctx context.Context, boxes []uint16) error {
	rec := codec.NewRecord().Set("boxes", fromUint16s(boxes)...)
	_, err := c.s.Request(ctx, schema.CmdSetBox, rec)
	return err
}

// SetRCTuning writes MSP_SET_RC_TUNING.
func (c *Client) SetRCTuning(ctx context.Context, tuning RCTuning) error {
	_, err := c.s.Request(ctx, schema.CmdSetRCTuning, rcTuningToRecord(tuning))
	return err
}

// SetMisc writes MSP_SET_MISC.
func (c *Client) SetMisc(ctx context.Context, misc Misc) error {
	rec := codec.NewRecord().
		Set("power_trigger", int64(misc.PowerTrigger)).
		Set("min_throttle", int64(misc.MinThrottle)).
		Set("max_throttle", int64(misc.MaxThrottle)).
		Set("min_command", int64(misc.MinCommand)).
		Set("failsafe_throttle", int64(misc.FailsafeThrottle)).
		Set("arm_count", int64(misc.ArmCount)).
		Set("lifetime", int64(misc.Lifetime)).
		Set("mag_declination", int64(math.Round(misc.MagDeclination*deciScale))).
		Set("vbat_scale", int64(misc.VBatScale)).
		Set("vbat_warn1", int64(misc.VBatWarn1)).
		Set("vbat_warn2", int64(misc.VBatWarn2)).
		Set("vbat_crit", int64(misc.VBatCrit))
	_, err := c.s.Request(ctx, schema.CmdSetMisc, rec)
	return err
}

// Waypoint queries MSP_WP for waypoint number n.
//
// MSP_WP is the one bidirectional command: the request carries the
// waypoint number and the response carries the stored waypoint.
func (c *Client) Waypoint(ctx context.Context, n uint8) (Waypoint, error) {
	rec := codec.NewRecord().Set("wp_no", int64(n))
	resp, err := c.s.Request(ctx, schema.CmdWP, rec)
	if err != nil {
		return Waypoint{}, err
	}
	return Waypoint{
		Number:     uint8(resp.Int("wp_no")),
		Latitude:   float64(resp.Int("latitude")) / coordScale,
		Longitude:  float64(resp.Int("longitude")) / coordScale,
		AltHold:    int32(resp.Int("alt_hold")),
		Heading:    uint16(resp.Int("heading")),
		TimeToStay: uint16(resp.Int("time_to_stay")),
		NavFlag:    uint8(resp.Int("nav_flag")),
	}, nil
}

// SetWaypoint writes MSP_SET_WP.
func (c *Client) SetWaypoint(ctx context.Context, wp Waypoint) error {
	rec := codec.NewRecord().
		Set("wp_no", int64(wp.Number)).
		Set("latitude", int64(math.Round(wp.Latitude*coordScale))).
		Set("longitude", int64(math.Round(wp.Longitude*coordScale))).
		Set("alt_hold", int64(wp.AltHold)).
		Set("heading", int64(wp.Heading)).
		Set("time_to_stay", int64(wp.TimeToStay)).
		Set("nav_flag", int64(wp.NavFlag))
	_, err := c.s.Request(ctx, schema.CmdSetWP, rec)
	return err
}

// SelectSetting switches the active configuration slot (0..2).
func (c *Client) SelectSetting(ctx context.Context, setting uint8) error {
	if setting > 2 {
		return fmt.Errorf("%w: setting slot %d", ErrEnumOutOfRange, setting)
	}
	rec := codec.NewRecord().Set("setting", int64(setting))
	_, err := c.s.Request(ctx, schema.CmdSelectSetting, rec)
	return err
}

// SetHeading writes MSP_SET_HEAD, in degrees -180..180.
func (c *Client) SetHeading(ctx context.Context, degrees int16) error {
	rec := codec.NewRecord().Set("heading", int64(degrees))
	_, err := c.s.Request(ctx, schema.CmdSetHead, rec)
	return err
}

// SetMotor writes MSP_SET_MOTOR for bench-testing motors.
func (c *Client) SetMotor(ctx context.Context, motors []uint16) error {
	rec := codec.NewRecord().Set("motors", fromUint16s(motors)...)
	_, err := c.s.Request(ctx, schema.CmdSetMotor, rec)
	return err
}

// AccCalibration triggers accelerometer calibration.
func (c *Client) AccCalibration(ctx context.Context) error {
	_, err := c.s.Request(ctx, schema.CmdAccCalibration, nil)
	return err
}

// MagCalibration triggers magnetometer calibration.
func (c *Client) MagCalibration(ctx context.Context) error {
	_, err := c.s.Request(ctx, schema.CmdMagCalibration, nil)
	return err
}

// ResetConf restores the firmware's default configuration.
func (c *Client) ResetConf(ctx context.Context) error {
	_, err := c.s.Request(ctx, schema.CmdResetConf, nil)
	return err
}

// Bind triggers receiver binding on supported hardware.
func (c *Client) Bind(ctx context.Context) error {
	_, err := c.s.Request(ctx, schema.CmdBind, nil)
	return err
}

// WriteEEPROM persists the current configuration.
func (c *Client) WriteEEPROM(ctx context.Context) error {
	_, err := c.s.Request(ctx, schema.CmdEepromWrite, nil)
	return err
}

func rcTuningFromRecord(rec *codec.Record) RCTuning {
	return RCTuning{
		RCRate:        uint8(rec.Int("rc_rate")),
		RCExpo:        uint8(rec.Int("rc_expo")),
		RollPitchRate: uint8(rec.Int("roll_pitch_rate")),
		YawRate:       uint8(rec.Int("yaw_rate")),
		DynThrottle:   uint8(rec.Int("dyn_thr_pid")),
		ThrottleMid:   uint8(rec.Int("throttle_mid")),
		ThrottleExpo:  uint8(rec.Int("throttle_expo")),
	}
}

func rcTuningToRecord(t RCTuning) *codec.Record {
	return codec.NewRecord().
		Set("rc_rate", int64(t.RCRate)).
		Set("rc_expo", int64(t.RCExpo)).
		Set("roll_pitch_rate", int64(t.RollPitchRate)).
		Set("yaw_rate", int64(t.YawRate)).
		Set("dyn_thr_pid", int64(t.DynThrottle)).
		Set("throttle_mid", int64(t.ThrottleMid)).
		Set("throttle_expo", int64(t.ThrottleExpo))
}

// splitNames decodes the ';'-separated name tables of MSP_BOXNAMES and
// MSP_PIDNAMES, which end with a trailing separator.
func splitNames(raw []byte) []string {
	s := strings.TrimSuffix(string(raw), ";")
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

func toUint16s(vals []int64) []uint16 {
	out := make([]uint16, len(vals))
	for i, v := range vals {
		out[i] = uint16(v)
	}
	return out
}

func fromUint16s(vals []uint16) []int64 {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(v)
	}
	return out
}
