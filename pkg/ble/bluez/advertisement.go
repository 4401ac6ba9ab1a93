package bluez

import "encoding/binary"

// MatterServiceUUID16 is the 16-bit service UUID commissionable devices
// advertise their identification block under.
const MatterServiceUUID16 = 0xFFF6

const (
	opcodeCommissionable = 0x00
	minServiceDataLen    = 7
	discriminatorMask    = 0x0FFF
)

// Advertisement is the identification block of a commissionable device.
type Advertisement struct {
	Discriminator uint16
	Version       uint8
	Vendor        uint16
	Product       uint16
	Flags         uint8
}

// ParseServiceData decodes service data published under MatterServiceUUID16.
// Layout: opcode(1) discriminator|version<<12 (LE16) vendor (LE16)
// product (LE16) [flags(1)].
func ParseServiceData(data []byte) (Advertisement, bool) {
	if len(data) < minServiceDataLen || data[0] != opcodeCommissionable {
		return Advertisement{}, false
	}

	discAndVersion := binary.LittleEndian.Uint16(data[1:3])

	adv := Advertisement{
		Discriminator: discAndVersion & discriminatorMask,
		Version:       uint8(discAndVersion >> 12),
		Vendor:        binary.LittleEndian.Uint16(data[3:5]),
		Product:       binary.LittleEndian.Uint16(data[5:7]),
	}

	if len(data) > minServiceDataLen {
		adv.Flags = data[7]
	}

	return adv, true
}
