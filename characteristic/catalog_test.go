package characteristic

import (
	"testing"

	"github.com/gattkit/gattkit/encoding"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleDateTime() encoding.DateTime {
	return encoding.DateTime{Year: 2026, Month: 8, Day: 29, Hours: 10, Minutes: 30, Seconds: 5}
}

// TestCatalogRoundTrip drives decode(encode(v)) == v through every
// registered codec, including the flags word being re-derived from field
// presence.
func TestCatalogRoundTrip(t *testing.T) {
	dt := sampleDateTime()

	tests := []struct {
		name  string
		value Value
		opts  []DecodeOption
	}{
		{
			name:  "appearance",
			value: &Appearance{Category: 833},
		},
		{
			name:  "tx power level",
			value: &TxPowerLevel{DBm: -8},
		},
		{
			name:  "date time",
			value: &DateTimeValue{DateTime: dt},
		},
		{
			name:  "battery level",
			value: &BatteryLevel{Percent: 87},
		},
		{
			name: "glucose measurement",
			value: &GlucoseMeasurement{
				SequenceNumber: 5,
				BaseTime:       dt,
				TimeOffset:     ptr(int16(-30)),
				Concentration: &GlucoseConcentration{
					Value:          encoding.Finite(82),
					Type:           1,
					SampleLocation: 2,
				},
				MolPerL:        true,
				SensorStatus:   ptr(uint16(0x0101)),
				ContextFollows: true,
			},
		},
		{
			name: "temperature measurement",
			value: &TemperatureMeasurement{
				Temperature: encoding.Finite(37),
				Timestamp:   ptr(dt),
				TempType:    ptr(TempTypeMouth),
			},
		},
		{
			name: "current time",
			value: &CurrentTime{
				DateTime:     dt,
				DayOfWeek:    6,
				Fractions256: 128,
				AdjustReason: AdjustManual | AdjustDSTChange,
			},
		},
		{
			name: "blood pressure measurement",
			value: &BloodPressureMeasurement{
				Systolic:          encoding.Finite(120),
				Diastolic:         encoding.Finite(80),
				MeanArterial:      encoding.NaN(),
				Timestamp:         ptr(dt),
				PulseRate:         ptr(encoding.Finite(72)),
				UserID:            ptr(uint8(1)),
				MeasurementStatus: ptr(BPStatusBodyMovement | BPStatusIrregularPulse),
			},
		},
		{
			name: "heart rate measurement narrow",
			value: &HeartRateMeasurement{
				Rate:             72,
				ContactSupported: true,
				ContactDetected:  true,
				EnergyExpended:   ptr(uint16(330)),
				RRIntervals:      []uint16{1024, 980},
			},
		},
		{
			name: "heart rate measurement wide",
			value: &HeartRateMeasurement{
				Rate: 310,
				Wide: true,
			},
		},
		{
			name: "cgm feature",
			value: &CGMFeature{
				Features:       1<<cgmFeatureE2ECRC | 0x000003,
				Type:           1,
				SampleLocation: 5,
			},
		},
		{
			name: "cgm measurement with crc",
			value: &CGMMeasurement{
				Concentration: encoding.Finite(104),
				TimeOffset:    15,
				StatusOctet:   ptr(uint8(0x01)),
				WarningOctet:  ptr(uint8(0x80)),
				Trend:         ptr(encoding.Finite(-1)),
				Quality:       ptr(encoding.Finite(99)),
				E2ECRC:        true,
			},
			opts: []DecodeOption{WithRecordCRC(CRCPresent)},
		},
		{
			name: "csc measurement",
			value: &CSCMeasurement{
				Wheel: &WheelRevolutionData{Revolutions: 10250, LastEventTime: 42000},
				Crank: &CrankRevolutionData{Revolutions: 951, LastEventTime: 43111},
			},
		},
		{
			name: "plx continuous measurement",
			value: &PLXContinuousMeasurement{
				Normal:            SpO2PRPair{SpO2: encoding.Finite(98), PulseRate: encoding.Finite(72)},
				Slow:              &SpO2PRPair{SpO2: encoding.Finite(97), PulseRate: encoding.Finite(71)},
				MeasurementStatus: ptr(uint16(0x0020)),
				SensorStatus:      ptr(uint32(0x010203)),
				PulseAmplitude:    ptr(encoding.Finite(5)),
			},
		},
		{
			name: "weight measurement",
			value: &WeightMeasurement{
				Weight:           14000,
				Timestamp:        ptr(dt),
				UserID:           ptr(uint8(2)),
				Body:             &BMIHeight{BMI: 226, Height: 1750},
				WeightResolution: 0.005,
				HeightResolution: 0.001,
			},
		},
		{
			name: "weight scale feature",
			value: &WeightScaleFeature{
				TimestampSupported:   true,
				BMISupported:         true,
				WeightResolutionCode: 7,
				HeightResolutionCode: 3,
			},
		},
		{
			name: "indoor bike data",
			value: &IndoorBikeData{
				Speed:         ptr(uint16(2550)),
				Cadence:       ptr(uint16(170)),
				TotalDistance: ptr(uint32(100000)),
				Power:         ptr(int16(250)),
				Energy:        &ExpendedEnergy{Total: 350, PerHour: 700, PerMinute: 12},
				HeartRate:     ptr(uint8(140)),
				ElapsedTime:   ptr(uint16(600)),
			},
		},
		{
			name: "blood pressure record",
			value: &BloodPressureRecord{
				First:   true,
				Counter: 3,
				Payload: []byte{0x24, 0x78, 0x50},
			},
			opts: []DecodeOption{WithRecordCRC(CRCAbsent)},
		},
		{
			name: "battery level status",
			value: &BatteryLevelStatus{
				Power: PowerState{
					BatteryPresent:     true,
					WiredExternalPower: 1,
					ChargeState:        1,
					ChargeLevel:        1,
					ChargingType:       2,
				},
				Identifier:       ptr(uint16(2)),
				Level:            ptr(uint8(76)),
				AdditionalStatus: ptr(uint8(0x01)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := tt.value.CharacteristicType()

			data, err := Encode(typ, tt.value)
			require.NoError(t, err)

			outcome := Decode(typ, data, tt.opts...)
			require.NoError(t, outcome.Err)
			require.Empty(t, outcome.FieldErrors)
			require.True(t, outcome.Success)
			require.Equal(t, tt.value, outcome.Value)

			// Byte-level fidelity: re-encoding the decoded value must
			// reproduce the original wire bytes.
			again, err := Encode(typ, outcome.Value)
			require.NoError(t, err)
			require.Equal(t, data, again)
		})
	}
}
