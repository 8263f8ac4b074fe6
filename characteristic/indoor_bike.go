package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Indoor Bike Data flag bits (16-bit flags word). Bit 0 is the
// fitness-machine "More Data" bit with inverted meaning: instantaneous
// speed is present when the bit is CLEAR.
const (
	ibFlagMoreData       = 0
	ibFlagAvgSpeed       = 1
	ibFlagCadence        = 2
	ibFlagAvgCadence     = 3
	ibFlagTotalDistance  = 4
	ibFlagResistance     = 5
	ibFlagPower          = 6
	ibFlagAvgPower       = 7
	ibFlagExpendedEnergy = 8
	ibFlagHeartRate      = 9
	ibFlagMetabolic      = 10
	ibFlagElapsedTime    = 11
	ibFlagRemainingTime  = 12
)

// ExpendedEnergy groups the three energy fields gated by a single flag
// bit: total, per hour, and per minute.
type ExpendedEnergy struct {
	// Total is the session energy in kcal.
	Total uint16
	// PerHour is the energy rate in kcal/h.
	PerHour uint16
	// PerMinute is the energy rate in kcal/min.
	PerMinute uint8
}

// IndoorBikeData is the decoded Indoor Bike Data characteristic from the
// Fitness Machine Service. All fields are optional; which ones a trainer
// reports varies with its transmission schedule, and a packet may carry
// any subset.
type IndoorBikeData struct {
	// Speed is the instantaneous speed in units of 0.01 km/h. Present
	// when the More Data bit is clear.
	Speed *uint16
	// AvgSpeed is the average speed in units of 0.01 km/h.
	AvgSpeed *uint16
	// Cadence is the instantaneous cadence in units of 0.5 /min.
	Cadence *uint16
	// AvgCadence is the average cadence in units of 0.5 /min.
	AvgCadence *uint16
	// TotalDistance is the cumulative distance in metres (24-bit on the
	// wire).
	TotalDistance *uint32
	// Resistance is the unitless trainer resistance level.
	Resistance *int16
	// Power is the instantaneous power in watts.
	Power *int16
	// AvgPower is the average power in watts.
	AvgPower *int16
	// Energy carries the expended-energy triple.
	Energy *ExpendedEnergy
	// HeartRate is the heart rate in beats per minute.
	HeartRate *uint8
	// Metabolic is the metabolic equivalent in units of 0.1 MET.
	Metabolic *uint8
	// ElapsedTime is the session elapsed time in seconds.
	ElapsedTime *uint16
	// RemainingTime is the session remaining time in seconds.
	RemainingTime *uint16
}

func (IndoorBikeData) CharacteristicType() Type { return TypeIndoorBikeData }

type indoorBikeCodec struct{}

func (indoorBikeCodec) Type() Type { return TypeIndoorBikeData }

func (indoorBikeCodec) Rule() ValidationRule {
	return AtLeast(2, format.KindComposite)
}

func gatedUint16(name string, bit uint, p Polarity, slot **uint16) GatedField {
	return GatedField{
		Name:     name,
		Bit:      bit,
		Polarity: p,
		Decode: func(r *encoding.Reader) error {
			v, err := r.Uint16()
			if err != nil {
				return err
			}
			*slot = &v

			return nil
		},
		Present: func() bool { return *slot != nil },
		Encode: func(w *encoding.Writer) error {
			w.AppendUint16(**slot)

			return nil
		},
	}
}

func gatedSint16(name string, bit uint, slot **int16) GatedField {
	return GatedField{
		Name: name,
		Bit:  bit,
		Decode: func(r *encoding.Reader) error {
			v, err := r.Sint16()
			if err != nil {
				return err
			}
			*slot = &v

			return nil
		},
		Present: func() bool { return *slot != nil },
		Encode: func(w *encoding.Writer) error {
			w.AppendSint16(**slot)

			return nil
		},
	}
}

func gatedUint8(name string, bit uint, slot **uint8) GatedField {
	return GatedField{
		Name: name,
		Bit:  bit,
		Decode: func(r *encoding.Reader) error {
			v, err := r.Uint8()
			if err != nil {
				return err
			}
			*slot = &v

			return nil
		},
		Present: func() bool { return *slot != nil },
		Encode: func(w *encoding.Writer) error {
			w.AppendUint8(**slot)

			return nil
		},
	}
}

func (indoorBikeCodec) fields(m *IndoorBikeData) []GatedField {
	return []GatedField{
		gatedUint16("instantaneous speed", ibFlagMoreData, PresentIfClear, &m.Speed),
		gatedUint16("average speed", ibFlagAvgSpeed, PresentIfSet, &m.AvgSpeed),
		gatedUint16("instantaneous cadence", ibFlagCadence, PresentIfSet, &m.Cadence),
		gatedUint16("average cadence", ibFlagAvgCadence, PresentIfSet, &m.AvgCadence),
		{
			Name: "total distance",
			Bit:  ibFlagTotalDistance,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint24()
				if err != nil {
					return err
				}
				m.TotalDistance = &v

				return nil
			},
			Present: func() bool { return m.TotalDistance != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendUint24(*m.TotalDistance)
			},
		},
		gatedSint16("resistance level", ibFlagResistance, &m.Resistance),
		gatedSint16("instantaneous power", ibFlagPower, &m.Power),
		gatedSint16("average power", ibFlagAvgPower, &m.AvgPower),
		{
			Name: "expended energy",
			Bit:  ibFlagExpendedEnergy,
			Decode: func(r *encoding.Reader) error {
				total, err := r.Uint16()
				if err != nil {
					return err
				}
				perHour, err := r.Uint16()
				if err != nil {
					return err
				}
				perMinute, err := r.Uint8()
				if err != nil {
					return err
				}
				m.Energy = &ExpendedEnergy{Total: total, PerHour: perHour, PerMinute: perMinute}

				return nil
			},
			Present: func() bool { return m.Energy != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(m.Energy.Total)
				w.AppendUint16(m.Energy.PerHour)
				w.AppendUint8(m.Energy.PerMinute)

				return nil
			},
		},
		gatedUint8("heart rate", ibFlagHeartRate, &m.HeartRate),
		gatedUint8("metabolic equivalent", ibFlagMetabolic, &m.Metabolic),
		gatedUint16("elapsed time", ibFlagElapsedTime, PresentIfSet, &m.ElapsedTime),
		gatedUint16("remaining time", ibFlagRemainingTime, PresentIfSet, &m.RemainingTime),
	}
}

func (c indoorBikeCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flags, err := r.Uint16()
	if err != nil {
		return nil, nil, err
	}

	m := &IndoorBikeData{}
	fieldErrs := WalkDecode(r, uint32(flags), c.fields(m))

	return m, fieldErrs, nil
}

func (c indoorBikeCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*IndoorBikeData](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)
	w.AppendUint16(uint16(DeriveFlags(0, fields)))

	return WalkEncode(w, fields)
}

func (indoorBikeCodec) Validate(Value) []FieldError { return nil }
