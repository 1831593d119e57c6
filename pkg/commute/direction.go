package commute

// ResolveLeg maps an hour of the day to the active commute leg.
// [0, morning) and [evening, 24) are outbound, [morning, evening) is inbound.
func ResolveLeg(s Settings, hour int) CommuteLeg {
	hour = ((hour % 24) + 24) % 24

	if hour < s.MorningCutoff || hour >= s.EveningCutoff {
		return s.Leg(Outbound)
	}
	return s.Leg(Inbound)
}

// NextSwitchHour returns the cutoff hour at which the active leg changes next
func NextSwitchHour(s Settings, hour int) int {
	hour = ((hour % 24) + 24) % 24

	switch {
	case hour < s.MorningCutoff:
		return s.MorningCutoff
	case hour < s.EveningCutoff:
		return s.EveningCutoff % 24
	default:
		return s.MorningCutoff
	}
}
