// Package report renders a weather.Report as plain text for terminals and logs.
package report

import (
	"io"
	"strconv"
	"text/template"

	"github.com/i474232898/snorkel-forecast/internal/weather"
)

// Placeholder is printed wherever a value is unknown.
const Placeholder = "?"

var funcs = template.FuncMap{
	"val": formatValue,
	"windArrow": func(d weather.DailyForecast) string {
		return arrowOrPlaceholder(d.WindArrow())
	},
	"waveArrow": func(d weather.DailyForecast) string {
		return arrowOrPlaceholder(d.WaveArrow())
	},
	"deg": func(f float64) string { return strconv.FormatFloat(f, 'f', 0, 64) },
}

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(
	`Snorkeling forecast for {{.Location.Name}} ({{printf "%.3f" .Location.Lat}}, {{printf "%.3f" .Location.Lon}}) at {{printf "%02d" .TargetHour}}:00
{{- if .Empty}}
No forecast available for {{printf "%02d" .TargetHour}}:00 local time.
{{- end}}
{{- range .Days}}

{{.Date}} {{if .Suitable}}✅ Good for snorkeling{{else}}❌ Not ideal{{end}}
  Temp: {{val .Record.Temperature 1}}°C, Wind: {{val .Record.WindSpeed 1}} m/s {{windArrow .}}, Gusts: {{val .Record.GustSpeed 1}} m/s
  Precipitation: {{val .Record.Precipitation 1}} mm/h, Cloud cover: {{val .Record.CloudCover 0}}/8, Visibility: {{val .Record.Visibility 1}} km
  Wave height: {{val .Record.WaveHeight 1}} m {{waveArrow .}}, Wave period: {{val .Record.WavePeriod 1}} s, Sea temp: {{val .Record.SeaTemperature 1}}°C
  Sun elevation: {{deg .SunElevation}}°
{{- with .Assess.Reasons}}
  Why: {{range $i, $r := .}}{{if $i}}; {{end}}{{$r}}{{end}}
{{- end}}
{{- end}}
{{- with .Bathing}}

Bathing site water temperature: {{val .WaterTemperature 1}}°C{{with .ObservedAt}} (measured {{.}}){{end}}, water quality: {{if .Quality}}{{.Quality}}{{else}}?{{end}}
{{- end}}
`))

// Render writes r as text to w.
func Render(w io.Writer, r weather.Report) error {
	return reportTmpl.Execute(w, r)
}

func formatValue(v weather.Value, decimals int) string {
	f, ok := v.Float()
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

func arrowOrPlaceholder(s string, ok bool) string {
	if !ok {
		return Placeholder
	}
	return s
}
