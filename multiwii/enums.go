package multiwii

import (
	"errors"
	"fmt"
)

// ErrEnumOutOfRange reports an enumerated field holding a value this
// registry has no name for. Firmware ahead of this library may report
// such values; callers get a classified error, never a crash.
var ErrEnumOutOfRange = errors.New("multiwii: enum value out of range")

// Multitype identifies the vehicle's physical configuration.
type Multitype uint8

const (
	MultitypeTri         Multitype = 1
	MultitypeQuadP       Multitype = 2
	MultitypeQuadX       Multitype = 3
	MultitypeBi          Multitype = 4
	MultitypeGimbal      Multitype = 5
	MultitypeY6          Multitype = 6
	MultitypeHex6        Multitype = 7
	MultitypeFlyingWing  Multitype = 8
	MultitypeY4          Multitype = 9
	MultitypeHex6X       Multitype = 10
	MultitypeOctoX8      Multitype = 11
	MultitypeOctoFlatP   Multitype = 12
	MultitypeOctoFlatX   Multitype = 13
	MultitypeAirplane    Multitype = 14
	MultitypeHeli120     Multitype = 15
	MultitypeHeli90      Multitype = 16
	MultitypeVTail4      Multitype = 17
	MultitypeHex6H       Multitype = 18
	MultitypePPMToServo  Multitype = 19
	MultitypeDualcopter  Multitype = 20
	MultitypeSinglecopter Multitype = 21
)

var multitypeNames = map[Multitype]string{
	MultitypeTri:          "TRI",
	MultitypeQuadP:        "QUADP",
	MultitypeQuadX:        "QUADX",
	MultitypeBi:           "BI",
	MultitypeGimbal:       "GIMBAL",
	MultitypeY6:           "Y6",
	MultitypeHex6:         "HEX6",
	MultitypeFlyingWing:   "FLYING_WING",
	MultitypeY4:           "Y4",
	MultitypeHex6X:        "HEX6X",
	MultitypeOctoX8:       "OCTOX8",
	MultitypeOctoFlatP:    "OCTOFLATP",
	MultitypeOctoFlatX:    "OCTOFLATX",
	MultitypeAirplane:     "AIRPLANE",
	MultitypeHeli120:      "HELI_120_CCPM",
	MultitypeHeli90:       "HELI_90_DEG",
	MultitypeVTail4:       "VTAIL4",
	MultitypeHex6H:        "HEX6H",
	MultitypePPMToServo:   "PPM_TO_SERVO",
	MultitypeDualcopter:   "DUALCOPTER",
	MultitypeSinglecopter: "SINGLECOPTER",
}

// ParseMultitype validates a raw multitype field.
func ParseMultitype(v int64) (Multitype, error) {
	m := Multitype(v)
	if _, ok := multitypeNames[m]; !ok {
		return 0, fmt.Errorf("%w: multitype %d", ErrEnumOutOfRange, v)
	}
	return m, nil
}

func (m Multitype) String() string {
	if name, ok := multitypeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MULTITYPE(%d)", uint8(m))
}

// Box identifies one checkable flight-mode box.
type Box uint8

const (
	BoxArm Box = iota
	BoxAngle
	BoxHorizon
	BoxBaro
	BoxVario
	BoxMag
	BoxHeadFree
	BoxHeadAdj
	BoxCamStab
	BoxCamTrig
	BoxGPSHome
	BoxGPSHold
	BoxPassthru
	BoxBeeper
	BoxLedMax
	BoxLedLow
	BoxLLights
	BoxCalib
	BoxGovernor
	BoxOSDSwitch
	BoxMission
	BoxLand

	boxCount
)

var boxNames = [boxCount]string{
	"ARM", "ANGLE", "HORIZON", "BARO", "VARIO", "MAG",
	"HEADFREE", "HEADADJ", "CAMSTAB", "CAMTRIG", "GPS HOME", "GPS HOLD",
	"PASSTHRU", "BEEPER", "LEDMAX", "LEDLOW", "LLIGHTS", "CALIB",
	"GOVERNOR", "OSD SW", "MISSION", "LAND",
}

// ParseBox validates a raw box identifier.
func ParseBox(v int64) (Box, error) {
	if v < 0 || v >= int64(boxCount) {
		return 0, fmt.Errorf("%w: box %d", ErrEnumOutOfRange, v)
	}
	return Box(v), nil
}

func (b Box) String() string {
	if b < boxCount {
		return boxNames[b]
	}
	return fmt.Sprintf("BOX(%d)", uint8(b))
}

// BoxState is the aux-channel activation range of one box.
type BoxState uint8

const (
	BoxStateEmpty BoxState = iota
	BoxStateLow
	BoxStateMid
	BoxStateHigh
)

func (s BoxState) String() string {
	switch s {
	case BoxStateEmpty:
		return "EMPTY"
	case BoxStateLow:
		return "LOW"
	case BoxStateMid:
		return "MID"
	case BoxStateHigh:
		return "HIGH"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}

// Sensor bits reported by MSP_STATUS.
const (
	SensorAcc   uint16 = 1 << 0
	SensorBaro  uint16 = 1 << 1
	SensorMag   uint16 = 1 << 2
	SensorGPS   uint16 = 1 << 3
	SensorSonar uint16 = 1 << 4
)
