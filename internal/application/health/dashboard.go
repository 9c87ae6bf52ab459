package health

import (
	"bytes"
	"html/template"

	"github.com/dustin/go-humanize"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"uptime": func(sec int64) string {
		if sec <= 0 {
			return "just started"
		}
		return humanize.Comma(sec) + "s"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>FoodShare · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta http-equiv="refresh" content="10">
  <style>
    :root { --green: #16a34a; --dark: #14532d; --bg: #f7faf7; --muted: #64748b; }
    body { background: var(--bg); color: var(--dark); font-family: system-ui, sans-serif; margin: 0; padding: 40px 20px; }
    .container { max-width: 900px; margin: 0 auto; }
    h1 { font-size: 40px; margin: 0 0 8px; letter-spacing: -1px; }
    .sub { color: var(--muted); font-weight: 600; margin-bottom: 30px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
    .card { background: #fff; border-radius: 16px; padding: 24px; box-shadow: 0 10px 30px -10px rgba(22, 163, 74, 0.2); }
    .label { text-transform: uppercase; font-size: 11px; font-weight: 800; letter-spacing: 2px; color: #94a3b8; margin-bottom: 12px; }
    .big { font-size: 32px; font-weight: 900; }
    .row { display: flex; justify-content: space-between; padding: 6px 0; font-size: 14px; font-weight: 600; }
    .ok { color: var(--green); }
    .err { color: #dc2626; }
    footer { margin-top: 24px; font-family: monospace; font-size: 13px; color: var(--muted); }
    @media (max-width: 800px) { .grid { grid-template-columns: 1fr; } }
  </style>
</head>
<body>
  <div class="container">
    <h1 class="{{if eq .Status "ok"}}ok{{else}}err{{end}}">{{if eq .Status "ok"}}All systems operational{{else}}Service degraded{{end}}</h1>
    <div class="sub">FoodShare API · up {{uptime .Runtime.UptimeSeconds}} · {{.Runtime.GoVersion}} on {{.Runtime.Platform}}</div>
    <div class="grid">
      <div class="card">
        <div class="label">Traffic</div>
        <div class="big">{{.Traffic.TotalRequests}}</div>
        <div class="row"><span>Success rate</span><span>{{.Traffic.SuccessRate}}%</span></div>
        <div class="row"><span>Failed</span><span>{{.Traffic.FailedCount}}</span></div>
      </div>
      <div class="card">
        <div class="label">Latency</div>
        <div class="big">{{.Traffic.AvgResponseTime}} ms</div>
        <div class="row"><span>Heap in use</span><span>{{.Runtime.Memory.HeapInMB}} MB</span></div>
        <div class="row"><span>Goroutines</span><span>{{.Runtime.Goroutines}}</span></div>
      </div>
      <div class="card">
        <div class="label">Dependencies</div>
        {{range $name, $dep := .Dependencies}}<div class="row"><span>{{$name}}</span><span class="{{if eq $dep.Status "connected"}}ok{{else}}err{{end}}">{{$dep.Status}}</span></div>
        {{end}}
      </div>
    </div>
    <footer>{{with .Traffic.LastRequest}}last request: {{index . "method"}} {{index . "path"}}{{else}}no requests yet{{end}} · <a href="/health/errors">recent errors</a></footer>
  </div>
</body>
</html>`))

// RenderDashboardHTML returns the HTML for GET /.
func RenderDashboardHTML(health CollectResult) string {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, health); err != nil {
		return "<!DOCTYPE html><html><body><h1>" + template.HTMLEscapeString(health.Status) + "</h1></body></html>"
	}
	return buf.String()
}
