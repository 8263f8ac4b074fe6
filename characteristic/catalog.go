package characteristic

import "sort"

// codecs is the static catalog of registered characteristic codecs. It is
// populated once at package init and read-only afterward, so concurrent
// Decode/Encode calls need no locking.
var codecs = map[Type]Codec{}

func register(c Codec) {
	codecs[c.Type()] = c
}

func init() {
	register(appearanceCodec{})
	register(txPowerLevelCodec{})
	register(dateTimeCodec{})
	register(batteryLevelCodec{})
	register(temperatureCodec{})
	register(glucoseCodec{})
	register(currentTimeCodec{})
	register(bloodPressureCodec{})
	register(heartRateCodec{})
	register(cgmFeatureCodec{})
	register(cgmCodec{})
	register(cscCodec{})
	register(plxCodec{})
	register(weightCodec{})
	register(weightFeatureCodec{})
	register(indoorBikeCodec{})
	register(bpRecordCodec{})
	register(batteryStatusCodec{})
}

// Lookup returns the codec registered for the given characteristic type.
func Lookup(t Type) (Codec, bool) {
	c, ok := codecs[t]
	return c, ok
}

// Types returns the catalog's characteristic types in ascending UUID
// order.
func Types() []Type {
	out := make([]Type, 0, len(codecs))
	for t := range codecs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
