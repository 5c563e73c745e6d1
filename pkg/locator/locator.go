package locator

import (
	"errors"
	"fmt"
	"strings"
)

// ServerToken is the only locator directive currently understood.
const ServerToken = "SRV"

var (
	ErrInvalidForm            = errors.New("unsupported symbol path form")
	ErrUnsupportedMultiServer = errors.New("only one symbol server/path supported at this time")
)

// Locator pairs a local mirror root with the remote symbol store root.
type Locator struct {
	LocalRoot  string
	RemoteRoot string
}

func (l Locator) String() string {
	return strings.Join([]string{ServerToken, l.LocalRoot, l.RemoteRoot}, "*")
}

// Parse parses one SRV*<local_root>*<remote_root> segment.
func Parse(segment string) (Locator, error) {
	fields := strings.Split(segment, "*")
	if len(fields) != 3 || fields[0] != ServerToken {
		return Locator{}, fmt.Errorf("%w: %q", ErrInvalidForm, segment)
	}

	return Locator{
		LocalRoot:  fields[1],
		RemoteRoot: fields[2],
	}, nil
}

// ParseList parses every ';'-separated segment of a descriptor.
func ParseList(descriptor string) ([]Locator, error) {
	segments := strings.Split(descriptor, ";")

	locators := make([]Locator, 0, len(segments))
	for _, segment := range segments {
		loc, err := Parse(segment)
		if err != nil {
			return nil, err
		}
		locators = append(locators, loc)
	}

	return locators, nil
}

// ParseSingle parses a descriptor that must name exactly one locator.
func ParseSingle(descriptor string) (Locator, error) {
	locators, err := ParseList(descriptor)
	if err != nil {
		return Locator{}, err
	}
	if len(locators) != 1 {
		return Locator{}, fmt.Errorf("%w: got %d", ErrUnsupportedMultiServer, len(locators))
	}

	return locators[0], nil
}
