package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/polyroots/internal/poly"
	"github.com/agbru/polyroots/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function that
// also lists the polynomial families.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sCertified polynomial roots%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Isolates all complex roots of a squarefree integer polynomial.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] <poly>\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "<poly> is a family below, or the coefficients c0 c1 ... cn of\nc0 + c1 x + ... + cn x^n.\n\n")

		fmt.Fprintf(out, "%sFamilies:%s\n", t.Warning, t.Reset)
		for _, f := range poly.Families() {
			fmt.Fprintf(out, "  %s%-25s%s %s\n", t.Primary, f.Usage, t.Reset, f.Description)
		}

		fmt.Fprintf(out, "\n%sFlags:%s\n", t.Warning, t.Reset)
		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Muted, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
