package chart

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: #1a1a2e; max-width: 1000px; margin: 0 auto; padding: 1rem; line-height: 1.5; }
header p { color: #6c757d; font-size: .875rem; }
section { margin: 2rem 0; }
section h2 { font-size: 1.25rem; border-bottom: 1px solid #dee2e6; padding-bottom: .25rem; }
img { max-width: 100%; }
table { border-collapse: collapse; font-size: .8125rem; width: 100%; }
th, td { padding: .375rem .5rem; border-bottom: 1px solid #dee2e6; text-align: left; }
.notice { background: #fdecea; border: 1px solid #f5c2c7; color: #842029; border-radius: 6px; padding: .75rem 1rem; }
.note { color: #6c757d; font-size: .8125rem; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>Generated {{.Generated}}{{if .RunID}} &middot; run {{.RunID}}{{end}}</p>
</header>
{{range .Sections}}
<section>
  <h2>{{.Title}}</h2>
  {{- if .Error}}
  <div class="notice">This panel could not be rendered: {{.Error}}</div>
  {{- else if .Preview}}
  <table>
    <thead><tr>{{range .Preview.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>{{range .Preview.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
  </table>
  {{- else}}
  <img alt="{{.Title}}" src="{{.Image}}">
  {{- if .Skipped}}<p class="note">{{.Skipped}} row(s) without a usable value were left out.</p>{{end}}
  {{- end}}
</section>
{{end}}
</body>
</html>
`
