package search

import (
	"strings"

	"github.com/xyz-asif/lostfound/internal/features/posts"
)

// DeviceType is a searchable device kind.
type DeviceType string

const (
	DevicePhone  DeviceType = "PHONE"
	DeviceLaptop DeviceType = "LAPTOP"
)

// identifierFor maps a device kind onto the post field compared against.
var identifierFor = map[DeviceType]posts.Identifier{
	DevicePhone:  posts.IdentifierIMEI,
	DeviceLaptop: posts.IdentifierSerial,
}

// ParseDeviceType accepts any letter case.
func ParseDeviceType(s string) (DeviceType, bool) {
	t := DeviceType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := identifierFor[t]
	return t, ok
}
