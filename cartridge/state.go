package cartridge

import (
	"bytes"
	"encoding/gob"
)

// encodeGob and decodeGob back every mapper's Save()/Load() pair: the
// blob format is private to this package, so gob's self-describing
// encoding is a reasonable trade against writing a manual byte layout
// for eight different bank-register shapes.
func encodeGob(v interface{}) []byte {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil
	}
	return buf.Bytes()
}

func decodeGob(b []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}

// State is a full snapshot of a Cartridge's mutable state: any
// CHR-RAM contents, PRG-RAM contents (if the mapper has any), and the
// mapper's own bank-register blob.
type State struct {
	CHRRAM      []byte
	PRGRAM      []byte
	MapperState []byte
}

func (c *Cartridge) SaveState() State {
	s := State{}
	if c.IsCHRRAM {
		s.CHRRAM = make([]byte, len(c.CHRROM))
		copy(s.CHRRAM, c.CHRROM)
	}
	if ram := c.SRAM(); ram != nil {
		s.PRGRAM = make([]byte, len(ram))
		copy(s.PRGRAM, ram)
	}
	s.MapperState = c.Mapper.Save()
	return s
}

func (c *Cartridge) LoadState(s State) error {
	if c.IsCHRRAM && len(s.CHRRAM) > 0 {
		copy(c.CHRROM, s.CHRRAM)
	}
	if len(s.PRGRAM) > 0 {
		if err := c.LoadSRAM(s.PRGRAM); err != nil {
			return err
		}
	}
	return c.Mapper.Load(s.MapperState)
}
