package multiwii

// Ident is the MSP_IDENT record.
type Ident struct {
	Version    uint8
	Multitype  Multitype
	MSPVersion uint8
	Capability uint32
}

// Status is the MSP_STATUS record.
type Status struct {
	CycleTime uint16 // microseconds per main loop
	I2CErrors uint16
	Sensors   uint16 // Sensor* bitmask
	Flags     uint32 // active box bitmask
	Setting   uint8  // current configuration slot
}

// Has reports whether the given Sensor* bit is present.
func (s Status) Has(sensor uint16) bool {
	return s.Sensors&sensor != 0
}

// RawIMU is the MSP_RAW_IMU record, in raw sensor units.
type RawIMU struct {
	Acc  [3]int16
	Gyro [3]int16
	Mag  [3]int16
}

// RawGPS is the MSP_RAW_GPS record. Coordinates are decimal degrees.
type RawGPS struct {
	Fix          bool
	NumSat       uint8
	Latitude     float64
	Longitude    float64
	Altitude     uint16  // meters
	Speed        uint16  // cm/s
	GroundCourse float64 // degrees
}

// CompGPS is the MSP_COMP_GPS record.
type CompGPS struct {
	DistanceToHome  uint16 // meters
	DirectionToHome uint16 // degrees
	Update          uint8
}

// Attitude is the MSP_ATTITUDE record, in degrees.
type Attitude struct {
	Roll    float64
	Pitch   float64
	Heading float64
}

// Altitude is the MSP_ALTITUDE record.
type Altitude struct {
	EstimatedAlt int32 // cm
	Vario        int16 // cm/s
}

// Analog is the MSP_ANALOG record.
type Analog struct {
	VBat          float64 // volts
	PowerMeterSum uint16
	RSSI          uint16
	Amperage      uint16
}

// RCTuning is the MSP_RC_TUNING record. All values are raw firmware
// units (percent-style 0..255 knobs).
type RCTuning struct {
	RCRate        uint8
	RCExpo        uint8
	RollPitchRate uint8
	YawRate       uint8
	DynThrottle   uint8
	ThrottleMid   uint8
	ThrottleExpo  uint8
}

// PIDTerms is one controller's gain triplet.
type PIDTerms struct {
	P, I, D uint8
}

// PIDCount is the number of controllers MSP_PID carries.
const PIDCount = 10

// Misc is the MSP_MISC record.
type Misc struct {
	PowerTrigger     uint16
	MinThrottle      uint16
	MaxThrottle      uint16
	MinCommand       uint16
	FailsafeThrottle uint16
	ArmCount         uint16
	Lifetime         uint32
	MagDeclination   float64 // degrees
	VBatScale        uint8
	VBatWarn1        uint8
	VBatWarn2        uint8
	VBatCrit         uint8
}

// Waypoint is the MSP_WP record. Coordinates are decimal degrees.
type Waypoint struct {
	Number     uint8
	Latitude   float64
	Longitude  float64
	AltHold    int32 // cm
	Heading    uint16
	TimeToStay uint16
	NavFlag    uint8
}
