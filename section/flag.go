package section

// Flags is the header bit field.
//
// Bit 0 marks a splat trained with antialiasing. Bits 1-7 are reserved and must be 0.
type Flags uint8

const (
	FlagAntialiased Flags = 0x01 // FlagAntialiased marks an antialiased (mip-splatting) splat.

	knownFlagsMask = FlagAntialiased
)

// IsAntialiased returns whether the antialiased bit is set.
func (f Flags) IsAntialiased() bool {
	return f&FlagAntialiased != 0
}

// WithAntialiased sets the antialiased bit.
func (f *Flags) WithAntialiased() {
	*f |= FlagAntialiased
}

// WithoutAntialiased clears the antialiased bit.
func (f *Flags) WithoutAntialiased() {
	*f &^= FlagAntialiased
}

// SetAntialiased sets or clears the antialiased bit.
func (f *Flags) SetAntialiased(enabled bool) {
	if enabled {
		f.WithAntialiased()
	} else {
		f.WithoutAntialiased()
	}
}

// HasUnknownBits reports whether any reserved bit is set.
func (f Flags) HasUnknownBits() bool {
	return f&^knownFlagsMask != 0
}
