package codec_test

import (
	"fmt"
	"log"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
)

// Example_roundTrip creates a record, encrypts it and decodes it again
func Example_roundTrip() {
	r, err := codec.Blank(game.Seven, false)
	if err != nil {
		log.Fatal(err)
	}
	r.SetEncryptionConstant(0xCAFEBABE)
	r.SetSpecies(722)
	r.SetNickname("Rowlet")
	r.Encrypt()

	loaded, err := codec.New(game.Seven, r.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(loaded.Species(), loaded.Nickname(), loaded.ChecksumValid())
	// Output: 722 Rowlet true
}

// Example_displayIDs shows the six digit trainer ID of modern records
func Example_displayIDs() {
	r, _ := codec.Blank(game.Eight, false)
	r.SetDisplayTID(123456)
	r.SetDisplaySID(42)
	fmt.Println(r.DisplayTID(), r.DisplaySID())
	// Output: 123456 42
}
