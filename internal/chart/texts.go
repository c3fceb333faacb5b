package chart

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys, which double as the English texts.
const (
	seriesLabelKey = "Average temperature (°C)"
	yAxisTitleKey  = "Temperature (°C)"
	xAxisTitleKey  = "Date"
	alertKey       = "Could not load temperature data. Check that the data file exists."
)

var norwegian = map[string]string{
	seriesLabelKey: "Gjennomsnittstemperatur (°C)",
	yAxisTitleKey:  "Temperatur (°C)",
	xAxisTitleKey:  "Dato",
	alertKey:       "Kunne ikke laste temperaturdata. Sjekk at data.json finnes.",
}

func init() {
	for _, tag := range []language.Tag{language.Norwegian, language.MustParse("nb"), language.MustParse("nn")} {
		for key, msg := range norwegian {
			_ = message.SetString(tag, key, msg)
		}
	}
}

// Texts are the user-visible strings of the temperature chart.
type Texts struct {
	SeriesLabel string
	YAxisTitle  string
	XAxisTitle  string
	Alert       string
}

// TextsFor returns the texts for the given locale, falling back to English.
func TextsFor(locale string) Texts {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	return Texts{
		SeriesLabel: p.Sprintf(seriesLabelKey),
		YAxisTitle:  p.Sprintf(yAxisTitleKey),
		XAxisTitle:  p.Sprintf(xAxisTitleKey),
		Alert:       p.Sprintf(alertKey),
	}
}
