package art

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/gnomegl/gitgaze/internal/utils"
)

func PrintLogo() {
	logo := figure.NewFigure("gitgaze", "chunky", false)
	fmt.Fprintf(os.Stderr, "\033[35m%s\033[0m", logo.String())
	fmt.Fprintf(os.Stderr, "            \033[91mv%s by gnomegl\033[0m\n\n", utils.GetVersion())
}
