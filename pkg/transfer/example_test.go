package transfer_test

import (
	"fmt"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/transfer"
)

func ExampleConverter_ConvertWithReport() {
	src, _ := codec.Blank(game.Seven, false)
	src.SetSpecies(25)
	src.SetNickname("Sparky")
	src.(codec.ContestStatter).SetContestStat(0, 100)

	c := transfer.NewConverter(nil)
	out, rep, err := c.ConvertWithReport(src, game.LGPE)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.Generation(), out.Nickname())
	for _, d := range rep.Dropped {
		fmt.Println(d)
	}
	// Output:
	// LGPE Sparky
	// 7->LGPE contest stats
}
