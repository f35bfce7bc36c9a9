package board

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DomainBoard is the hash domain for board definitions.
const DomainBoard = "cluesolver/board/v1"

// Hash returns a content-addressed identifier for d.
// Format: hex(SHA256(DomainBoard + 0x00 + JSON(d))), where the JSON has fixed
// key order and no HTML escaping.
func (d Definition) Hash() string {
	data, err := d.MarshalCanonical()
	if err != nil {
		// Definition holds only string slices; encoding cannot fail.
		panic(err)
	}
	h := sha256.New()
	h.Write([]byte(DomainBoard))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// MarshalCanonical encodes d as compact JSON with keys in struct order
// (locations, people, weapons) and HTML escaping disabled, so that names
// such as "R&D Lab" survive byte-for-byte.
func (d Definition) MarshalCanonical() ([]byte, error) {
	norm := Definition{
		Locations: nonNil(d.Locations),
		People:    nonNil(d.People),
		Weapons:   nonNil(d.Weapons),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
