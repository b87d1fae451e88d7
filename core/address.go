package core

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// AddressLength canonical address length in bytes
const AddressLength = 20

// Address canonical (binary) form of an account or contract address.
// Storage keys and comparisons always use this form.
type Address [AddressLength]byte

// IsZero reports whether the address is unset
func (a Address) IsZero() bool {
	return a == Address{}
}

// Hex hex encoding of the canonical bytes
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// MarshalText encodes the canonical form as hex
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText decodes the hex canonical form
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromHex(string(text))
	if err != nil {
		return err
	}

	*a = addr
	return nil
}

// AddressFromHex parse hex canonical form
func AddressFromHex(s string) (Address, error) {
	var addr Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return AddressFromBytes(b)
}

// AddressFromBytes copy b into a canonical address
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressLength {
		return addr, fmt.Errorf("%w: expect %d bytes, got %d", ErrInvalidAddress, AddressLength, len(b))
	}

	copy(addr[:], b)
	return addr, nil
}

// AddressCodec converts between human readable (bech32) and canonical addresses
type AddressCodec struct {
	Prefix string
}

// Canonical human -> canonical
func (c AddressCodec) Canonical(human string) (Address, error) {
	var addr Address

	prefix, data, err := bech32.Decode(human)
	if err != nil {
		return addr, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, human, err)
	}

	if c.Prefix != "" && prefix != c.Prefix {
		return addr, fmt.Errorf("%w: %s: unexpected prefix %q", ErrInvalidAddress, human, prefix)
	}

	b, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return addr, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, human, err)
	}

	return AddressFromBytes(b)
}

// Human canonical -> human
func (c AddressCodec) Human(addr Address) (string, error) {
	conv, err := bech32.ConvertBits(addr[:], 8, 5, true)
	if err != nil {
		return "", err
	}

	return bech32.Encode(c.Prefix, conv)
}

// MustHuman like Human but panics on failure
func (c AddressCodec) MustHuman(addr Address) string {
	human, err := c.Human(addr)
	if err != nil {
		panic(err)
	}

	return human
}
