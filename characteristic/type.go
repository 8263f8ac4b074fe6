package characteristic

import "fmt"

// Type identifies a characteristic by its SIG-assigned 16-bit UUID.
type Type uint16

const (
	TypeAppearance               Type = 0x2A01
	TypeTxPowerLevel             Type = 0x2A07
	TypeDateTime                 Type = 0x2A08
	TypeGlucoseMeasurement       Type = 0x2A18
	TypeBatteryLevel             Type = 0x2A19
	TypeTemperatureMeasurement   Type = 0x2A1C
	TypeCurrentTime              Type = 0x2A2B
	TypeBloodPressureMeasurement Type = 0x2A35
	TypeHeartRateMeasurement     Type = 0x2A37
	TypeCGMFeature               Type = 0x2A58
	TypeCGMMeasurement           Type = 0x2A5A
	TypeCSCMeasurement           Type = 0x2A5B
	TypePLXContinuousMeasurement Type = 0x2A5F
	TypeWeightMeasurement        Type = 0x2A9D
	TypeWeightScaleFeature       Type = 0x2A9E
	TypeIndoorBikeData           Type = 0x2AD2
	TypeBloodPressureRecord      Type = 0x2B36
	TypeBatteryLevelStatus       Type = 0x2BED
)

// UUID16 returns the 16-bit UUID value.
func (t Type) UUID16() uint16 {
	return uint16(t)
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Unknown(0x%04X)", uint16(t))
}

var typeNames = map[Type]string{
	TypeAppearance:               "Appearance",
	TypeTxPowerLevel:             "Tx Power Level",
	TypeDateTime:                 "Date Time",
	TypeGlucoseMeasurement:       "Glucose Measurement",
	TypeBatteryLevel:             "Battery Level",
	TypeTemperatureMeasurement:   "Temperature Measurement",
	TypeCurrentTime:              "Current Time",
	TypeBloodPressureMeasurement: "Blood Pressure Measurement",
	TypeHeartRateMeasurement:     "Heart Rate Measurement",
	TypeCGMFeature:               "CGM Feature",
	TypeCGMMeasurement:           "CGM Measurement",
	TypeCSCMeasurement:           "CSC Measurement",
	TypePLXContinuousMeasurement: "PLX Continuous Measurement",
	TypeWeightMeasurement:        "Weight Measurement",
	TypeWeightScaleFeature:       "Weight Scale Feature",
	TypeIndoorBikeData:           "Indoor Bike Data",
	TypeBloodPressureRecord:      "Blood Pressure Record",
	TypeBatteryLevelStatus:       "Battery Level Status",
}

// Value is a decoded characteristic value. Each concrete value struct
// reports the type it belongs to, which the pipeline uses to reject
// mismatched Encode calls.
type Value interface {
	CharacteristicType() Type
}

// Context is a read-only map from sibling characteristic type to its
// already-decoded value. A few characteristics (CGM Measurement, Weight
// Measurement) need a paired Feature characteristic to interpret their
// payload; callers that have decoded the sibling pass it here. The codecs
// only read from the map.
type Context map[Type]Value

// Value returns the decoded sibling value for t, if present.
func (c Context) Value(t Type) (Value, bool) {
	v, ok := c[t]
	return v, ok
}
