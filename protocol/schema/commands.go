package schema

// MSP v1 command codes. Codes below 200 query firmware state; codes from
// 200 up write state or trigger an action and are acknowledged with an
// empty echo of the same code.
const (
	CmdIdent          uint8 = 100
	CmdStatus         uint8 = 101
	CmdRawIMU         uint8 = 102
	CmdServo          uint8 = 103
	CmdMotor          uint8 = 104
	CmdRC             uint8 = 105
	CmdRawGPS         uint8 = 106
	CmdCompGPS        uint8 = 107
	CmdAttitude       uint8 = 108
	CmdAltitude       uint8 = 109
	CmdAnalog         uint8 = 110
	CmdRCTuning       uint8 = 111
	CmdPID            uint8 = 112
	CmdBox            uint8 = 113
	CmdMisc           uint8 = 114
	CmdMotorPins      uint8 = 115
	CmdBoxNames       uint8 = 116
	CmdPIDNames       uint8 = 117
	CmdWP             uint8 = 118
	CmdBoxIDs         uint8 = 119
	CmdSetRawRC       uint8 = 200
	CmdSetRawGPS      uint8 = 201
	CmdSetPID         uint8 = 202
	CmdSetBox         uint8 = 203
	CmdSetRCTuning    uint8 = 204
	CmdAccCalibration uint8 = 205
	CmdMagCalibration uint8 = 206
	CmdSetMisc        uint8 = 207
	CmdResetConf      uint8 = 208
	CmdSetWP          uint8 = 209
	CmdSelectSetting  uint8 = 210
	CmdSetHead        uint8 = 211
	CmdSetMotor       uint8 = 214
	CmdBind           uint8 = 240
	CmdEepromWrite    uint8 = 250
)

// Layouts shared between the GET command and its SET counterpart.
var (
	layoutRCTuning = Layout{
		{Name: "rc_rate", Kind: U8, Count: 1},
		{Name: "rc_expo", Kind: U8, Count: 1},
		{Name: "roll_pitch_rate", Kind: U8, Count: 1},
		{Name: "yaw_rate", Kind: U8, Count: 1},
		{Name: "dyn_thr_pid", Kind: U8, Count: 1},
		{Name: "throttle_mid", Kind: U8, Count: 1},
		{Name: "throttle_expo", Kind: U8, Count: 1},
	}
	layoutPID = Layout{
		{Name: "pids", Kind: U8, Count: 30},
	}
	layoutMisc = Layout{
		{Name: "power_trigger", Kind: U16, Count: 1},
		{Name: "min_throttle", Kind: U16, Count: 1},
		{Name: "max_throttle", Kind: U16, Count: 1},
		{Name: "min_command", Kind: U16, Count: 1},
		{Name: "failsafe_throttle", Kind: U16, Count: 1},
		{Name: "arm_count", Kind: U16, Count: 1},
		{Name: "lifetime", Kind: U32, Count: 1},
		{Name: "mag_declination", Kind: U16, Count: 1},
		{Name: "vbat_scale", Kind: U8, Count: 1},
		{Name: "vbat_warn1", Kind: U8, Count: 1},
		{Name: "vbat_warn2", Kind: U8, Count: 1},
		{Name: "vbat_crit", Kind: U8, Count: 1},
	}
	layoutWP = Layout{
		{Name: "wp_no", Kind: U8, Count: 1},
		{Name: "latitude", Kind: S32, Count: 1},
		{Name: "longitude", Kind: S32, Count: 1},
		{Name: "alt_hold", Kind: S32, Count: 1},
		{Name: "heading", Kind: U16, Count: 1},
		{Name: "time_to_stay", Kind: U16, Count: 1},
		{Name: "nav_flag", Kind: U8, Count: 1},
	}
)

var registry = map[uint8]Descriptor{
	CmdIdent: {Code: CmdIdent, Name: "MSP_IDENT", Direction: DirResponse, Layout: Layout{
		{Name: "version", Kind: U8, Count: 1},
		{Name: "multitype", Kind: U8, Count: 1},
		{Name: "msp_version", Kind: U8, Count: 1},
		{Name: "capability", Kind: U32, Count: 1},
	}},
	CmdStatus: {Code: CmdStatus, Name: "MSP_STATUS", Direction: DirResponse, Layout: Layout{
		{Name: "cycle_time", Kind: U16, Count: 1},
		{Name: "i2c_errors", Kind: U16, Count: 1},
		{Name: "sensors", Kind: U16, Count: 1},
		{Name: "flags", Kind: U32, Count: 1},
		{Name: "setting", Kind: U8, Count: 1},
	}},
	CmdRawIMU: {Code: CmdRawIMU, Name: "MSP_RAW_IMU", Direction: DirResponse, Layout: Layout{
		{Name: "acc", Kind: S16, Count: 3},
		{Name: "gyro", Kind: S16, Count: 3},
		{Name: "mag", Kind: S16, Count: 3},
	}},
	CmdServo: {Code: CmdServo, Name: "MSP_SERVO", Direction: DirResponse, Layout: Layout{
		{Name: "servos", Kind: U16},
	}},
	CmdMotor: {Code: CmdMotor, Name: "MSP_MOTOR", Direction: DirResponse, Layout: Layout{
		{Name: "motors", Kind: U16},
	}},
	CmdRC: {Code: CmdRC, Name: "MSP_RC", Direction: DirResponse, Layout: Layout{
		{Name: "channels", Kind: U16},
	}},
	CmdRawGPS: {Code: CmdRawGPS, Name: "MSP_RAW_GPS", Direction: DirResponse, Layout: Layout{
		{Name: "fix", Kind: U8, Count: 1},
		{Name: "num_sat", Kind: U8, Count: 1},
		{Name: "latitude", Kind: S32, Count: 1},
		{Name: "longitude", Kind: S32, Count: 1},
		{Name: "altitude", Kind: U16, Count: 1},
		{Name: "speed", Kind: U16, Count: 1},
		{Name: "ground_course", Kind: U16, Count: 1},
	}},
	CmdCompGPS: {Code: CmdCompGPS, Name: "MSP_COMP_GPS", Direction: DirResponse, Layout: Layout{
		{Name: "distance_to_home", Kind: U16, Count: 1},
		{Name: "direction_to_home", Kind: U16, Count: 1},
		{Name: "update", Kind: U8, Count: 1},
	}},
	CmdAttitude: {Code: CmdAttitude, Name: "MSP_ATTITUDE", Direction: DirResponse, Layout: Layout{
		{Name: "angx", Kind: S16, Count: 1},
		{Name: "angy", Kind: S16, Count: 1},
		{Name: "heading", Kind: S16, Count: 1},
	}},
	CmdAltitude: {Code: CmdAltitude, Name: "MSP_ALTITUDE", Direction: DirResponse, Layout: Layout{
		{Name: "est_alt", Kind: S32, Count: 1},
		{Name: "vario", Kind: S16, Count: 1},
	}},
	CmdAnalog: {Code: CmdAnalog, Name: "MSP_ANALOG", Direction: DirResponse, Layout: Layout{
		{Name: "vbat", Kind: U8, Count: 1},
		{Name: "power_meter_sum", Kind: U16, Count: 1},
		{Name: "rssi", Kind: U16, Count: 1},
		{Name: "amperage", Kind: U16, Count: 1},
	}},
	CmdRCTuning: {Code: CmdRCTuning, Name: "MSP_RC_TUNING", Direction: DirResponse, Layout: layoutRCTuning},
	CmdPID:      {Code: CmdPID, Name: "MSP_PID", Direction: DirResponse, Layout: layoutPID},
	CmdBox: {Code: CmdBox, Name: "MSP_BOX", Direction: DirResponse, Layout: Layout{
		{Name: "boxes", Kind: U16},
	}},
	CmdMisc: {Code: CmdMisc, Name: "MSP_MISC", Direction: DirResponse, Layout: layoutMisc},
	CmdMotorPins: {Code: CmdMotorPins, Name: "MSP_MOTOR_PINS", Direction: DirResponse, Layout: Layout{
		{Name: "pins", Kind: U8, Count: 8},
	}},
	CmdBoxNames: {Code: CmdBoxNames, Name: "MSP_BOXNAMES", Direction: DirResponse, Layout: Layout{
		{Name: "names", Kind: U8},
	}},
	CmdPIDNames: {Code: CmdPIDNames, Name: "MSP_PIDNAMES", Direction: DirResponse, Layout: Layout{
		{Name: "names", Kind: U8},
	}},
	CmdWP: {Code: CmdWP, Name: "MSP_WP", Direction: DirBidirectional, Layout: layoutWP, Query: Layout{
		{Name: "wp_no", Kind: U8, Count: 1},
	}},
	CmdBoxIDs: {Code: CmdBoxIDs, Name: "MSP_BOXIDS", Direction: DirResponse, Layout: Layout{
		{Name: "ids", Kind: U8},
	}},
	CmdSetRawRC: {Code: CmdSetRawRC, Name: "MSP_SET_RAW_RC", Direction: DirRequest, Layout: Layout{
		{Name: "channels", Kind: U16},
	}},
	CmdSetRawGPS: {Code: CmdSetRawGPS, Name: "MSP_SET_RAW_GPS", Direction: DirRequest, Layout: Layout{
		{Name: "fix", Kind: U8, Count: 1},
		{Name: "num_sat", Kind: U8, Count: 1},
		{Name: "latitude", Kind: S32, Count: 1},
		{Name: "longitude", Kind: S32, Count: 1},
		{Name: "altitude", Kind: U16, Count: 1},
		{Name: "speed", Kind: U16, Count: 1},
	}},
	CmdSetPID: {Code: CmdSetPID, Name: "MSP_SET_PID", Direction: DirRequest, Layout: layoutPID},
	CmdSetBox: {Code: CmdSetBox, Name: "MSP_SET_BOX", Direction: DirRequest, Layout: Layout{
		{Name: "boxes", Kind: U16},
	}},
	CmdSetRCTuning:    {Code: CmdSetRCTuning, Name: "MSP_SET_RC_TUNING", Direction: DirRequest, Layout: layoutRCTuning},
	CmdAccCalibration: {Code: CmdAccCalibration, Name: "MSP_ACC_CALIBRATION", Direction: DirRequest},
	CmdMagCalibration: {Code: CmdMagCalibration, Name: "MSP_MAG_CALIBRATION", Direction: DirRequest},
	CmdSetMisc:        {Code: CmdSetMisc, Name: "MSP_SET_MISC", Direction: DirRequest, Layout: layoutMisc},
	CmdResetConf:      {Code: CmdResetConf, Name: "MSP_RESET_CONF", Direction: DirRequest},
	CmdSetWP:          {Code: CmdSetWP, Name: "MSP_SET_WP", Direction: DirRequest, Layout: layoutWP},
	CmdSelectSetting: {Code: CmdSelectSetting, Name: "MSP_SELECT_SETTING", Direction: DirRequest, Layout: Layout{
		{Name: "setting", Kind: U8, Count: 1},
	}},
	CmdSetHead: {Code: CmdSetHead, Name: "MSP_SET_HEAD", Direction: DirRequest, Layout: Layout{
		{Name: "heading", Kind: S16, Count: 1},
	}},
	CmdSetMotor: {Code: CmdSetMotor, Name: "MSP_SET_MOTOR", Direction: DirRequest, Layout: Layout{
		{Name: "motors", Kind: U16},
	}},
	CmdBind:        {Code: CmdBind, Name: "MSP_BIND", Direction: DirRequest},
	CmdEepromWrite: {Code: CmdEepromWrite, Name: "MSP_EEPROM_WRITE", Direction: DirRequest},
}
