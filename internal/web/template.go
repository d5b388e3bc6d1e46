package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/mycolab/sporely/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"clock": func(seconds int) string {
		h := seconds / 3600
		m := (seconds % 3600) / 60
		s := seconds % 60
		if h > 0 {
			return fmt.Sprintf("%d:%02d:%02d", h, m, s)
		}
		return fmt.Sprintf("%02d:%02d", m, s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if .Timer.Running}}<meta http-equiv="refresh" content="1">{{else}}<meta http-equiv="refresh" content="10">{{end}}
<title>Sporely</title>
<style>
body { font-family: monospace; max-width: 640px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.countdown { font-size: 2em; }
.running { color: green; font-weight: bold; }
.paused { color: orange; font-weight: bold; }
.idle { color: #888; }
.pasteur { color: #b50; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Sporely Sterilization</h1>

<h2>Timer</h2>
<table>
<tr><th>State</th><td class="{{if .Timer.Running}}{{if .Timer.Paused}}paused{{else}}running{{end}}{{else}}idle{{end}}">{{if .Timer.Running}}{{if .Timer.Paused}}PAUSED{{else}}RUNNING{{end}}{{else}}IDLE{{end}}</td></tr>
<tr><th>Remaining</th><td class="countdown">{{clock .Timer.RemainingSeconds}}</td></tr>
<tr><th>Total</th><td>{{clock .Timer.TotalSeconds}}</td></tr>
</table>

<h2>Recommended Settings</h2>
<table>
{{if .PresetID}}<tr><th>Preset</th><td>{{.PresetID}}</td></tr>{{end}}
{{if .Params.IsPasteurization}}
<tr><th>Method</th><td class="pasteur">{{.Params.Advice}}</td></tr>
{{else}}
<tr><th>Pressure</th><td>{{.Params.PSI}} PSI{{if .Params.AltitudeAdjustment}} (+{{.Params.AltitudeAdjustment}} altitude){{end}}</td></tr>
<tr><th>Duration</th><td>{{.Params.Minutes}} min</td></tr>
{{end}}
</table>

<h2>Items ({{len .Items}})</h2>
<table>
{{range .Items}}<tr><th>{{.Name}}</th><td>{{.Kind}} &times;{{.Quantity}}</td></tr>
{{else}}<tr><td colspan="2">no items tracked</td></tr>
{{end}}
</table>

<h2>Run Log</h2>
<table>
{{range .LogEntries}}<tr><th>{{.Date.UTC.Format "2006-01-02 15:04"}}</th><td>{{.PSI}} PSI / {{.Minutes}} min, {{len .Items}} item(s)</td></tr>
{{else}}<tr><td colspan="2">no completed cycles</td></tr>
{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Cycles completed</th><td>{{.CyclesCompleted}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Database</th><td>{{.Config.DBPath}}</td></tr>
<tr><th>Sound</th><td>{{.Settings.TimerSound}} (volume {{printf "%.1f" .Settings.TimerVolume}})</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
