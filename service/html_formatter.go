package service

import (
	"html/template"
	"io"

	"github.com/ludo-technologies/qube/domain"
)

// htmlData is the root template context for the HTML report
type htmlData struct {
	Response *domain.LintResponse
	Grade    string
}

// writeHTML writes the analysis result as a standalone HTML report
func (f *OutputFormatterImpl) writeHTML(response *domain.LintResponse, writer io.Writer) error {
	funcMap := template.FuncMap{
		"severityClass": func(s domain.Severity) string {
			switch s {
			case domain.SeverityCritical:
				return "critical"
			case domain.SeverityWarning:
				return "warning"
			default:
				return "info"
			}
		},
		"gradeClass": func(grade string) string {
			switch grade {
			case "A", "B":
				return "good"
			case "C":
				return "fair"
			default:
				return "poor"
			}
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(htmlReportTemplate)
	if err != nil {
		return domain.NewOutputError("failed to parse HTML template", err)
	}

	data := htmlData{
		Response: response,
		Grade:    response.Summary.HealthGrade(),
	}
	if err := tmpl.Execute(writer, data); err != nil {
		return domain.NewOutputError("failed to render HTML report", err)
	}
	return nil
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>GDScript Lint Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #24292f; }
  h1 { font-size: 1.5rem; }
  .meta { color: #57606a; font-size: 0.85rem; margin-bottom: 1.5rem; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem; }
  .card { border: 1px solid #d0d7de; border-radius: 6px; padding: 1rem 1.5rem; min-width: 8rem; }
  .card .value { font-size: 1.6rem; font-weight: 600; }
  .card .label { color: #57606a; font-size: 0.8rem; }
  .grade.good { color: #1a7f37; }
  .grade.fair { color: #9a6700; }
  .grade.poor { color: #cf222e; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
  th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.7rem; text-align: left; font-size: 0.85rem; }
  th { background: #f6f8fa; }
  .severity { font-weight: 600; text-transform: uppercase; font-size: 0.75rem; }
  .severity.critical { color: #cf222e; }
  .severity.warning { color: #9a6700; }
  .severity.info { color: #0969da; }
  .filehead { background: #f6f8fa; font-weight: 600; }
</style>
</head>
<body>
<h1>GDScript Lint Report</h1>
<div class="meta">Generated {{.Response.GeneratedAt}} &middot; qube {{.Response.Version}}</div>

<div class="cards">
  <div class="card"><div class="value grade {{gradeClass .Grade}}">{{.Grade}}</div><div class="label">Health grade</div></div>
  <div class="card"><div class="value">{{.Response.Summary.FilesAnalyzed}}</div><div class="label">Files</div></div>
  <div class="card"><div class="value">{{.Response.Summary.TotalLines}}</div><div class="label">Lines</div></div>
  <div class="card"><div class="value">{{.Response.Summary.TotalIssues}}</div><div class="label">Issues</div></div>
  <div class="card"><div class="value">{{.Response.Summary.IgnoredIssues}}</div><div class="label">Suppressed</div></div>
  <div class="card"><div class="value">{{.Response.Summary.TotalDebtScore}}</div><div class="label">Debt score</div></div>
</div>

<table>
  <tr><th>Line</th><th>Severity</th><th>Check</th><th>Message</th></tr>
  {{range .Response.Files}}
    {{if .Issues}}
      <tr><td colspan="4" class="filehead">{{.FilePath}} (debt {{.DebtScore}})</td></tr>
      {{range .Issues}}
        <tr>
          <td>{{.Line}}</td>
          <td><span class="severity {{severityClass .Severity}}">{{.Severity}}</span></td>
          <td>{{.CheckID}}</td>
          <td>{{.Message}}</td>
        </tr>
      {{end}}
    {{end}}
  {{end}}
</table>

{{if .Response.Warnings}}
<h2>Warnings</h2>
<ul>{{range .Response.Warnings}}<li>{{.}}</li>{{end}}</ul>
{{end}}
</body>
</html>
`
