package mast

import (
	"slices"
	"strings"

	cosmic "github.com/OfriRose/cosmic-canvas"
)

// известные объекты, снятые обоими телескопами; сеть для них не нужна
var comparisonPairs = []cosmic.ComparisonPair{
	{
		Name:    "Pillars of Creation",
		JWSTURL: "https://stsci-opo.org/STScI-01GA76Q01D09HFEV174Z5ZJW5J.png",
		HSTURL:  "https://stsci-opo.org/STScI-01EVT1Z0Z2VQK8308JZ85E6EEM.png",
	},
	{
		Name:    "Carina Nebula",
		JWSTURL: "https://stsci-opo.org/STScI-01G7HDGS4743HQX7K9PVGQHXJT.png",
		HSTURL:  "https://stsci-opo.org/STScI-01G7HDGS27Q61ZJHPXN2R1JR8H.png",
	},
	{
		Name:    "Southern Ring Nebula",
		JWSTURL: "https://stsci-opo.org/STScI-01G70BTB8SYYQ8QN8JYJX3QE26.png",
		HSTURL:  "https://cdn.esahubble.org/archives/images/screen/heic1518a.jpg",
	},
}

func ComparisonPairs() []cosmic.ComparisonPair {
	return slices.Clone(comparisonPairs)
}

func LookupComparison(name string) (cosmic.ComparisonPair, bool) {
	name = strings.TrimSpace(name)

	for _, p := range comparisonPairs {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}

	return cosmic.ComparisonPair{}, false
}
