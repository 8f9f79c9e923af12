package banner

import (
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func Print() {
	logo, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithRGB("osint", pterm.NewRGB(0, 188, 212)),
		putils.LettersFromStringWithRGB("kit", pterm.NewRGB(255, 255, 255))).
		Srender()

	pterm.DefaultCenter.Print(logo)

	pterm.DefaultCenter.Print(
		pterm.DefaultHeader.
			WithFullWidth().
			WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
			Sprint("Public data lookup for identifiers and your own devices"),
	)

	pterm.Info.Println(
		"For educational use on your own devices or with explicit permission only." +
			"\nIP geolocation shows ISP city-level data, not live device positions.",
	)
}
