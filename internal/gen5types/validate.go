package gen5types

// Validate checks a SearchConditions value for structural validity. Checks
// that the Go type system already makes impossible (MAC length, Timer0/
// VCount overflow) are not repeated here.
func (c SearchConditions) Validate() error {
	if !c.DateTimeEnd.After(c.DateTimeStart) && !c.DateTimeEnd.Equal(c.DateTimeStart) {
		return &ErrInvalidSearchConditions{Reason: "datetime range is empty (end before start)"}
	}
	if c.Timer0Min > c.Timer0Max {
		return &ErrInvalidSearchConditions{Reason: "timer0Min > timer0Max"}
	}
	if c.VCountMin > c.VCountMax {
		return &ErrInvalidSearchConditions{Reason: "vcountMin > vcountMax"}
	}
	if c.KeyInput > 0x0FFF {
		return &ErrInvalidSearchConditions{Reason: "keyInput exceeds 12-bit range (0xFFF)"}
	}
	return nil
}
