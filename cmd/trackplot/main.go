package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"trackgen/internal/profile"
	"trackgen/internal/trackdef"
)

func main() {
	out := flag.String("o", "profile.png", "Output file; the extension selects png, svg or pdf")
	series := flag.String("series", "lean,turn", "Comma-separated series: height, lean, turn, swivel, tilt")
	flag.Parse()

	def := trackdef.Default()
	if flag.NArg() > 0 {
		var err error
		def, err = trackdef.Load(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	tr, err := def.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	all, err := profile.Extract(tr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var picked []profile.Series
	for _, name := range strings.Split(*series, ",") {
		s, err := profile.Find(all, strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		picked = append(picked, s)
	}

	if err := profile.Save(tr.Name, picked, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d rails, %d series)\n", *out, tr.Len(), len(picked))
}
